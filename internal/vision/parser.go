package vision

import (
	"encoding/json"
	"fmt"
	"strings"

	"cardledger/internal/common"
)

// parseResult extracts the JSON object embedded in a free-text reply.
// Providers are asked to answer with bare JSON but routinely wrap it in
// markdown fences or commentary.
func parseResult(content string) (Result, error) {
	content = cleanMarkdownWrapper(content)

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return Result{}, fmt.Errorf("%w: no JSON object in reply", common.ErrUnreadableReceipt)
	}

	var result Result
	if err := json.Unmarshal([]byte(content[start:end+1]), &result); err != nil {
		return Result{}, fmt.Errorf("%w: %v", common.ErrUnreadableReceipt, err)
	}
	return result, nil
}

// cleanMarkdownWrapper strips ```json fences around a reply.
func cleanMarkdownWrapper(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}

// receiptPrompt builds the extraction instruction with the target date
// as fallback context.
func receiptPrompt(targetDate string) string {
	return fmt.Sprintf(`Analyze this receipt image and answer with ONLY a JSON object in this exact shape, no other text:

{
  "merchant": "store name (string)",
  "amount": final charged amount (number, whole currency units, no separators or symbols),
  "date": "YYYY-MM-DD",
  "memo": "anything notable, or null"
}

Today's date: %s
If no date is visible on the receipt, use today's date.
Use the total charged amount, digits only.`, targetDate)
}
