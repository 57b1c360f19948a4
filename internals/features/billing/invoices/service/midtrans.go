// file: internals/features/billing/invoices/service/midtrans.go
package service

import (
	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	model "tutorku_backend/internals/features/billing/invoices/model"
)

var SnapClient snap.Client

// InitMidtrans initializes the Midtrans Snap client with the server key.
func InitMidtrans(serverKey string, production bool) {
	env := midtrans.Sandbox
	if production {
		env = midtrans.Production
	}
	SnapClient.New(serverKey, env)
}

// GenerateSnapToken creates a Snap payment token for one invoice draft so
// the invoice email can carry a payment link.
func GenerateSnapToken(draft *model.InvoiceDraft) (string, error) {
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  "inv-" + draft.InvoiceDraftWeekStart + "-" + draft.InvoiceDraftID.String()[:8],
			GrossAmt: int64(draft.InvoiceDraftTotalAmount * 100),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: draft.InvoiceDraftFamilyName,
			Email: draft.InvoiceDraftFamilyEmail,
		},
	}

	resp, err := SnapClient.CreateTransaction(req)
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}
