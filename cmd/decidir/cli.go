package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/kevin07696/decidir-go/pkg/decidir"
	pkgerrors "github.com/kevin07696/decidir-go/pkg/errors"
	"github.com/kevin07696/decidir-go/pkg/models"
	"github.com/shopspring/decimal"
)

// DecidirCLI runs one connector operation per invocation and prints the
// result as JSON
type DecidirCLI struct {
	ctx       context.Context
	connector *decidir.Connector
	out       io.Writer
}

type actionArgs struct {
	jsonFile  string
	paymentID int64
	refundID  int64
	amount    string
	userID    string
	cardToken string
	username  string
	siteID    string
	date      string
	offset    int64
	pageSize  int64
	siteOpID  string
	merchant  string
}

// Run dispatches action
func (cli *DecidirCLI) Run(action string, args actionArgs) error {
	switch action {
	case "healthcheck":
		return cli.print(cli.connector.HealthCheck(cli.ctx))
	case "payment":
		return cli.payment(args)
	case "instruction-3ds":
		var req models.Instruction3DSData
		if err := readJSON(args.jsonFile, &req); err != nil {
			return err
		}
		return cli.print(cli.connector.InstructionThreeDS(cli.ctx, args.username, &req))
	case "payment-info":
		if err := requireID("payment-id", args.paymentID); err != nil {
			return err
		}
		return cli.print(cli.connector.GetPaymentInfo(cli.ctx, args.paymentID))
	case "list-payments":
		return cli.print(cli.connector.GetAllPayments(cli.ctx, decidir.ListPaymentsParams{
			Offset:          args.offset,
			PageSize:        args.pageSize,
			SiteOperationID: args.siteOpID,
			MerchantID:      args.merchant,
		}))
	case "capture":
		return cli.capture(args)
	case "refund":
		if err := requireID("payment-id", args.paymentID); err != nil {
			return err
		}
		return cli.print(cli.connector.Refund(cli.ctx, args.paymentID))
	case "partial-refund":
		return cli.partialRefund(args)
	case "refund-sub-payment":
		if err := requireID("payment-id", args.paymentID); err != nil {
			return err
		}
		var req models.RefundSubPaymentRequest
		if err := readJSON(args.jsonFile, &req); err != nil {
			return err
		}
		return cli.print(cli.connector.RefundSubPayment(cli.ctx, args.paymentID, &req))
	case "delete-refund":
		if err := requireID("payment-id", args.paymentID); err != nil {
			return err
		}
		if err := requireID("refund-id", args.refundID); err != nil {
			return err
		}
		return cli.print(cli.connector.DeleteRefund(cli.ctx, args.paymentID, args.refundID))
	case "token":
		var req models.TokenRequest
		if err := readJSON(args.jsonFile, &req); err != nil {
			return err
		}
		return cli.print(cli.connector.GetToken(cli.ctx, &req))
	case "internal-token":
		var req models.InternalTokenRequest
		if err := readJSON(args.jsonFile, &req); err != nil {
			return err
		}
		return cli.print(cli.connector.GetInternalToken(cli.ctx, &req))
	case "cryptogram":
		var req models.CryptogramRequest
		if err := readJSON(args.jsonFile, &req); err != nil {
			return err
		}
		return cli.print(cli.connector.Cryptogram(cli.ctx, &req))
	case "validate":
		var req models.ValidateData
		if err := readJSON(args.jsonFile, &req); err != nil {
			return err
		}
		return cli.print(cli.connector.Validate(cli.ctx, &req))
	case "card-tokens":
		if args.userID == "" {
			return pkgerrors.NewValidationError("user-id", "is required")
		}
		return cli.print(cli.connector.GetAllCardTokens(cli.ctx, args.userID))
	case "delete-card-token":
		if args.cardToken == "" {
			return pkgerrors.NewValidationError("token", "is required")
		}
		deleted, err := cli.connector.DeleteCardToken(cli.ctx, args.cardToken)
		return cli.print(map[string]bool{"deleted": deleted}, err)
	case "batch-closure":
		return cli.print(cli.connector.BatchClosure(cli.ctx, &models.BatchClosureRequest{
			SiteID: args.siteID,
			Date:   args.date,
		}))
	default:
		return fmt.Errorf("unknown action: %s", action)
	}
}

func (cli *DecidirCLI) payment(args actionArgs) error {
	var req models.Payment
	if err := readJSON(args.jsonFile, &req); err != nil {
		return err
	}
	if req.SiteTransactionID == "" {
		req.SiteTransactionID = uuid.NewString()
	}
	if args.amount != "" {
		amount, err := parseAmount(args.amount)
		if err != nil {
			return err
		}
		req.Amount = amount
	}
	return cli.print(cli.connector.Payment(cli.ctx, &req))
}

func (cli *DecidirCLI) capture(args actionArgs) error {
	if err := requireID("payment-id", args.paymentID); err != nil {
		return err
	}
	amount, err := parseAmount(args.amount)
	if err != nil {
		return err
	}
	return cli.print(cli.connector.CapturePayment(cli.ctx, args.paymentID, amount))
}

func (cli *DecidirCLI) partialRefund(args actionArgs) error {
	if err := requireID("payment-id", args.paymentID); err != nil {
		return err
	}
	amount, err := decimal.NewFromString(args.amount)
	if err != nil {
		return pkgerrors.NewValidationError("amount", fmt.Sprintf("invalid decimal %q", args.amount))
	}
	return cli.print(cli.connector.PartialRefundDecimal(cli.ctx, args.paymentID, amount))
}

// print writes v as indented JSON unless err is set
func (cli *DecidirCLI) print(v any, err error) error {
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cli.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// errorReport is the JSON shape printed for failed API calls
type errorReport struct {
	Kind          pkgerrors.Kind          `json:"kind"`
	StatusCode    int                     `json:"status_code"`
	Message       string                  `json:"message"`
	ErrorResponse *models.ErrorResponse   `json:"error_response,omitempty"`
	Payment       *models.PaymentResponse `json:"payment,omitempty"`
	ThreeDS       *models.ThreeDSResponse `json:"three_ds,omitempty"`
}

// reportError prints API failures as JSON. It returns false for errors
// that did not come from a Decidir response.
func (cli *DecidirCLI) reportError(err error) bool {
	respErr, ok := pkgerrors.AsResponseError(err)
	if !ok {
		return false
	}

	report := errorReport{
		Kind:          respErr.Kind(),
		StatusCode:    respErr.StatusCode(),
		Message:       respErr.Message(),
		ErrorResponse: respErr.ErrorResponse(),
	}
	switch e := respErr.(type) {
	case *pkgerrors.PaymentFailure:
		report.Payment = e.Payment()
	case *pkgerrors.ThreeDSContinuation:
		report.ThreeDS = e.ThreeDS()
	}

	return cli.print(report, nil) == nil
}

func parseAmount(s string) (int64, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return 0, pkgerrors.NewValidationError("amount", fmt.Sprintf("invalid decimal %q", s))
	}
	return decidir.ToMinorUnits(amount)
}

func requireID(field string, id int64) error {
	if id <= 0 {
		return pkgerrors.NewValidationError(field, "must be a positive ID")
	}
	return nil
}

func readJSON(path string, v any) error {
	if path == "" {
		return pkgerrors.NewValidationError("json", "a request file is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
