// Package ofx ingests card purchases from OFX/QFX statement files.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"

	"cardledger/internal/model"
)

// Record is one card purchase extracted from a statement. Credits and
// payments never become records; only money spent does.
type Record struct {
	FiTID    string
	Date     string // "YYYY-MM-DD"
	Merchant string
	Memo     string
	Amount   int64
}

// Parser implements OFX/QFX file parsing.
type Parser struct{}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{}
}

// preprocessOFX fixes common formatting issues in OFX files.
func (p *Parser) preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	// Fix mixed-case SEVERITY values (should be INFO, WARN, or ERROR)
	severityRegex := regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	// Fix missing closing angle brackets in SGML-style OFX files
	tagFixRegex := regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
	content = tagFixRegex.ReplaceAllString(content, "$1>")

	return content
}

// ParseFile parses an OFX/QFX file and returns purchase records.
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader) ([]Record, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	processedContent := p.preprocessOFX(string(content))

	resp, err := ofxgo.ParseResponse(strings.NewReader(processedContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var records []Record
	var bankStmts, ccStmts int

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			records = append(records, p.processTranList(stmt.BankTranList)...)
		}
	}

	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			records = append(records, p.processTranList(stmt.BankTranList)...)
		}
	}

	slog.Info("Parsed OFX file",
		"purchases", len(records),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return records, nil
}

func (p *Parser) processTranList(list *ofxgo.TransactionList) []Record {
	if list == nil {
		return nil
	}

	var records []Record
	for _, ofxTx := range list.Transactions {
		rec, ok := p.convertTransaction(ofxTx)
		if !ok {
			continue
		}
		records = append(records, rec)
	}
	return records
}

// convertTransaction maps an OFX transaction to a purchase record.
// OFX uses negative amounts for debits; positive amounts are payments
// or refunds and are skipped.
func (p *Parser) convertTransaction(ofxTx ofxgo.Transaction) (Record, bool) {
	amountFloat, _ := ofxTx.TrnAmt.Float64()
	if amountFloat >= 0 {
		return Record{}, false
	}

	amount := int64(math.Round(-amountFloat))
	if amount <= 0 {
		return Record{}, false
	}

	rec := Record{
		FiTID:    string(ofxTx.FiTID),
		Date:     ofxTx.DtPosted.Time.Format(model.DateLayout),
		Merchant: p.extractMerchantName(ofxTx),
		Memo:     strings.TrimSpace(string(ofxTx.Memo)),
		Amount:   amount,
	}

	if rec.Merchant == "" {
		return Record{}, false
	}

	return rec, true
}

// extractMerchantName tries to get a clean merchant name from OFX data.
func (p *Parser) extractMerchantName(tx ofxgo.Transaction) string {
	// Prefer PAYEE if available (cleaner merchant name)
	if tx.Payee != nil && tx.Payee.Name != "" {
		return strings.TrimSpace(string(tx.Payee.Name))
	}

	name := string(tx.Name)

	// Sometimes MEMO has better merchant info
	if tx.Memo != "" && isGenericDescription(name) {
		name = string(tx.Memo)
	}

	name = strings.TrimSpace(name)

	prefixes := []string{
		"POS PURCHASE ",
		"PURCHASE AUTHORIZED ON ",
		"DEBIT CARD PURCHASE ",
		"CHECK CARD ",
		"VISA PURCHASE ",
		"MC PURCHASE ",
	}
	for _, prefix := range prefixes {
		if strings.HasPrefix(strings.ToUpper(name), prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// Strip leading "MM/DD " date fragments some banks prepend
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}

	return name
}

// isGenericDescription checks if a transaction name is too generic.
func isGenericDescription(name string) bool {
	generic := []string{
		"DEBIT",
		"CREDIT",
		"PURCHASE",
		"PAYMENT",
		"POS TRANSACTION",
		"CARD PURCHASE",
	}

	upperName := strings.ToUpper(name)
	for _, g := range generic {
		if upperName == g {
			return true
		}
	}
	return false
}
