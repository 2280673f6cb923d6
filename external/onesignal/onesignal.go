package onesignal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"

	"github.com/spf13/viper"
)

const defaultURL = "https://onesignal.com/api/v1/notifications"

var ErrRequestFailed = fmt.Errorf("onesignal request failed")

// NotificationRequest is the payload of a onesignal notification create
// call. Either TemplateID or Headings/Contents carries the message.
type NotificationRequest struct {
	AppID          string                 `json:"app_id"`
	TemplateID     string                 `json:"template_id,omitempty"`
	Headings       map[string]string      `json:"headings,omitempty"`
	Contents       map[string]string      `json:"contents,omitempty"`
	Filters        []map[string]string    `json:"filters,omitempty"`
	Data           map[string]interface{} `json:"data,omitempty"`
	LocalChannelID string                 `json:"android_channel_id,omitempty"`
}

type OneSignalClient struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

func NewClient(client *http.Client) *OneSignalClient {
	return &OneSignalClient{
		endpoint: defaultURL,
		apiKey:   viper.GetString("onesignal.key"),
		client:   client,
	}
}

// SendNotification submits a notification create request and treats any
// non-2xx answer as a failure.
func (c *OneSignalClient) SendNotification(ctx context.Context, notification *NotificationRequest) error {
	body, err := json.Marshal(notification)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req = req.WithContext(ctx)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Basic "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		d, _ := ioutil.ReadAll(resp.Body)
		return fmt.Errorf("%w: %s", ErrRequestFailed, string(d))
	}

	return nil
}
