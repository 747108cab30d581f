//go:build windows

package notify

import (
	"github.com/go-toast/toast"
)

// ToastNotifier shows Windows toast notifications.
type ToastNotifier struct {
	// AppID is the Application User Model ID the toast is attributed to.
	AppID string
}

func NewToastNotifier(appID string) *ToastNotifier {
	return &ToastNotifier{AppID: appID}
}

func (n *ToastNotifier) Notify(title, body string) error {
	t := toast.Notification{
		AppID:   n.AppID,
		Title:   title,
		Message: body,
	}
	return t.Push()
}
