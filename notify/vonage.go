package notify

import (
	"errors"
	"fmt"

	"github.com/vonage/vonage-go-sdk"
)

// VonageSender delivers SMS through the Vonage messaging API.
type VonageSender struct {
	sms *vonage.SMSClient
}

func NewVonageSender(apiKey, apiSecret string) *VonageSender {
	auth := vonage.CreateAuthFromKeySecret(apiKey, apiSecret)
	return &VonageSender{sms: vonage.NewSMSClient(auth)}
}

func (v *VonageSender) Send(from, to, text string) error {
	resp, errResp, err := v.sms.Send(from, to, text, vonage.SMSOpts{})
	if err != nil {
		return fmt.Errorf("send sms: %w", err)
	}
	if len(resp.Messages) == 0 {
		return errors.New("send sms: empty provider response")
	}
	// Status "0" is the provider's success code.
	if resp.Messages[0].Status != "0" {
		return fmt.Errorf("send sms: %s", errResp.Messages[0].ErrorText)
	}
	return nil
}
