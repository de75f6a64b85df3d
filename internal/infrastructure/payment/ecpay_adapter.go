package payment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopmall/backend/internal/domain/payment"
	"github.com/shopmall/backend/internal/infrastructure/config"
	"github.com/shopspring/decimal"
)

const (
	ecpayTimeLayout = "2006/01/02 15:04:05"
	ecpayPaymentAIO = "aio"
	ecpayChooseAll  = "ALL"
	ecpayEncryptSHA = "1"
)

// ECPay stage endpoints, used when the configuration leaves them empty
const (
	ECPayStageCheckoutURL = "https://payment-stage.ecpay.com.tw/Cashier/AioCheckOut/V5"
	ECPayStageQueryURL    = "https://payment-stage.ecpay.com.tw/Cashier/QueryTradeInfo/V5"
)

// Config validation errors
var (
	ErrECPayMissingMerchantID = errors.New("ecpay: missing merchant ID")
	ErrECPayMissingHashKey    = errors.New("ecpay: missing hash key or hash IV")
	ErrECPayMissingReturnURL  = errors.New("ecpay: missing return URL")
)

// taipei is the time zone ECPay expects trade dates in
var taipei = func() *time.Location {
	loc, err := time.LoadLocation("Asia/Taipei")
	if err != nil {
		return time.FixedZone("CST", 8*60*60)
	}
	return loc
}()

// ECPayAdapter implements payment.Gateway for the ECPay all-in-one checkout
type ECPayAdapter struct {
	cfg        config.ECPayConfig
	httpClient *http.Client
	now        func() time.Time
}

// NewECPayAdapter creates a new ECPay adapter
func NewECPayAdapter(cfg config.ECPayConfig) (*ECPayAdapter, error) {
	if cfg.MerchantID == "" {
		return nil, ErrECPayMissingMerchantID
	}
	if cfg.HashKey == "" || cfg.HashIV == "" {
		return nil, ErrECPayMissingHashKey
	}
	if cfg.ReturnURL == "" {
		return nil, ErrECPayMissingReturnURL
	}
	if cfg.CheckoutURL == "" {
		cfg.CheckoutURL = ECPayStageCheckoutURL
	}
	if cfg.QueryURL == "" {
		cfg.QueryURL = ECPayStageQueryURL
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ECPayAdapter{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
		now:        time.Now,
	}, nil
}

// Checkout builds the AioCheckOut form. ECPay only accepts whole TWD amounts.
func (a *ECPayAdapter) Checkout(_ context.Context, req payment.CheckoutRequest) (*payment.CheckoutForm, error) {
	amount := req.Amount.Round(0).IntPart()
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be at least 1 TWD", payment.ErrGatewayRejected)
	}
	tradeDate := req.TradeDate
	if tradeDate.IsZero() {
		tradeDate = a.now()
	}
	itemName := req.ItemName
	if itemName == "" {
		itemName = a.cfg.ItemDescription
	}
	description := req.Description
	if description == "" {
		description = itemName
	}

	fields := map[string]string{
		"MerchantID":        a.cfg.MerchantID,
		"MerchantTradeNo":   req.MerchantTradeNo,
		"MerchantTradeDate": tradeDate.In(taipei).Format(ecpayTimeLayout),
		"PaymentType":       ecpayPaymentAIO,
		"TotalAmount":       strconv.FormatInt(amount, 10),
		"TradeDesc":         description,
		"ItemName":          itemName,
		"ReturnURL":         a.cfg.ReturnURL,
		"ChoosePayment":     ecpayChooseAll,
		"EncryptType":       ecpayEncryptSHA,
	}
	if a.cfg.ClientBackURL != "" {
		fields["ClientBackURL"] = a.cfg.ClientBackURL
	}
	fields[checkMacValueField] = CheckMacValue(fields, a.cfg.HashKey, a.cfg.HashIV)

	return &payment.CheckoutForm{
		Action: a.cfg.CheckoutURL,
		Method: http.MethodPost,
		Fields: fields,
	}, nil
}

// VerifyNotification checks CheckMacValue and parses the ReturnURL notification
func (a *ECPayAdapter) VerifyNotification(_ context.Context, form url.Values) (*payment.Notification, error) {
	params := flatten(form)
	if !verifyCheckMacValue(params, a.cfg.HashKey, a.cfg.HashIV) {
		return nil, payment.ErrInvalidSignature
	}
	if params["MerchantID"] != a.cfg.MerchantID {
		return nil, fmt.Errorf("%w: unexpected merchant %q", payment.ErrGatewayRejected, params["MerchantID"])
	}

	n := &payment.Notification{
		MerchantTradeNo: params["MerchantTradeNo"],
		TradeNo:         params["TradeNo"],
		ReturnMessage:   params["RtnMsg"],
		Simulated:       params["SimulatePaid"] == "1",
	}
	if code, err := strconv.Atoi(params["RtnCode"]); err == nil {
		n.ReturnCode = code
	}
	if amount, err := decimal.NewFromString(params["TradeAmt"]); err == nil {
		n.Amount = amount
	}
	if paidAt, err := time.ParseInLocation(ecpayTimeLayout, params["PaymentDate"], taipei); err == nil {
		n.PaymentDate = paidAt
	}
	return n, nil
}

// QueryTrade calls QueryTradeInfo and verifies the signature of the answer
func (a *ECPayAdapter) QueryTrade(ctx context.Context, merchantTradeNo string) (*payment.TradeInfo, error) {
	params := map[string]string{
		"MerchantID":      a.cfg.MerchantID,
		"MerchantTradeNo": merchantTradeNo,
		"TimeStamp":       strconv.FormatInt(a.now().Unix(), 10),
	}
	params[checkMacValueField] = CheckMacValue(params, a.cfg.HashKey, a.cfg.HashIV)

	body, err := a.doRequest(ctx, a.cfg.QueryURL, params)
	if err != nil {
		return nil, err
	}

	values, err := url.ParseQuery(string(body))
	if err != nil {
		return nil, fmt.Errorf("ecpay: failed to parse QueryTradeInfo response: %w", err)
	}
	answer := flatten(values)
	if !verifyCheckMacValue(answer, a.cfg.HashKey, a.cfg.HashIV) {
		return nil, payment.ErrInvalidSignature
	}

	info := &payment.TradeInfo{
		MerchantTradeNo: answer["MerchantTradeNo"],
		TradeNo:         answer["TradeNo"],
		Status:          answer["TradeStatus"],
	}
	if amount, err := decimal.NewFromString(answer["TradeAmt"]); err == nil {
		info.Amount = amount
	}
	return info, nil
}

// doRequest posts a form to ECPay and returns the body
func (a *ECPayAdapter) doRequest(ctx context.Context, endpoint string, params map[string]string) ([]byte, error) {
	values := url.Values{}
	for key, value := range params {
		values.Set(key, value)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(values.Encode()))
	if err != nil {
		return nil, fmt.Errorf("ecpay: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", payment.ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return nil, fmt.Errorf("ecpay: failed to read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: HTTP %d", payment.ErrGatewayRejected, resp.StatusCode)
	}
	return body, nil
}

var _ payment.Gateway = (*ECPayAdapter)(nil)
