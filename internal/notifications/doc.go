// Package notifications delivers desktop notifications for user-visible
// events like environment creation and daemon startup.
package notifications
