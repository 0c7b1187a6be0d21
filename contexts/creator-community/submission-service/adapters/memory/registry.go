package memory

import (
	"context"
	"sync"

	domainerrors "fanforge/contexts/creator-community/submission-service/domain/errors"
	"fanforge/contexts/creator-community/submission-service/ports"
)

// StubRegistry is a scriptable IP registry for tests and local wiring.
type StubRegistry struct {
	mu       sync.Mutex
	receipt  ports.RegistrationReceipt
	err      error
	calls    int
	requests []ports.DerivativeRegistration
}

func NewStubRegistry() *StubRegistry {
	return &StubRegistry{
		receipt: ports.RegistrationReceipt{IPID: "0xip", TxHash: "0xtx"},
	}
}

func (r *StubRegistry) SetReceipt(receipt ports.RegistrationReceipt) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.receipt = receipt
	r.err = nil
}

func (r *StubRegistry) Fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err == nil {
		err = domainerrors.ErrRegistryUnavailable
	}
	r.err = err
}

func (r *StubRegistry) Recover() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = nil
}

func (r *StubRegistry) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func (r *StubRegistry) Requests() []ports.DerivativeRegistration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ports.DerivativeRegistration(nil), r.requests...)
}

func (r *StubRegistry) RegisterDerivative(_ context.Context, req ports.DerivativeRegistration) (ports.RegistrationReceipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	r.requests = append(r.requests, req)
	if r.err != nil {
		return ports.RegistrationReceipt{}, r.err
	}
	return r.receipt, nil
}
