// Package notificationservice stores and serves in-app notifications. Review
// outcomes from the submission workflow land here through the Notifier
// adapter wired in the composition root; users list and mark them read over
// HTTP.
package notificationservice
