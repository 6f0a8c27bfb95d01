package repository

import (
	"encoding/json"
	"fmt"
	"strings"

	"tetrades/internal/dto"
)

// promptQuantReport builds the deterministic instruction for one report. The
// weighting rubric below is descriptive prose for the model, nothing in this
// service computes it.
func (r *geminiAIRepository) promptQuantReport(param dto.GenerateReportParam) (string, error) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(
		"You are the lead quantitative analyst of Tetrades, a premium equity research desk. "+
			"Write a 90-day multi-factor forecast report for %s.\n\n",
		param.Ticker,
	))

	sb.WriteString(`### Multi-factor weighting model (apply as described):
- Momentum (30%): recent price action relative to the 52-week range.
- Value (25%): price/earnings ratio against sector norms.
- Size & liquidity (15%): market capitalization and traded volume.
- News sentiment (20%): tone and materiality of the supplied headlines.
- Macro regime (10%): current rate and policy environment.
`)

	quoteJSON, err := json.Marshal(param.Quote)
	if err != nil {
		return "", fmt.Errorf("failed to marshal quote: %w", err)
	}
	sb.WriteString("\n### Current market snapshot (JSON):\n")
	sb.Write(quoteJSON)
	sb.WriteString("\n")

	if len(param.News) > 0 {
		newsJSON, err := json.Marshal(param.News)
		if err != nil {
			return "", fmt.Errorf("failed to marshal news: %w", err)
		}
		sb.WriteString("\n### Recent headlines (JSON):\n")
		sb.Write(newsJSON)
		sb.WriteString("\n")
	}

	if len(param.History) > 0 {
		historyJSON, err := json.Marshal(param.History)
		if err != nil {
			return "", fmt.Errorf("failed to marshal history: %w", err)
		}
		sb.WriteString("\n### Recent daily closes (JSON):\n")
		sb.Write(historyJSON)
		sb.WriteString("\n")
	}

	sb.WriteString(`
### Output rules (mandatory):
1. Write the whole report in Korean, formatted as markdown with section headings.
2. Cover each factor of the weighting model with a short assessment.
3. State a 90-day price outlook with an explicit probability framing.
4. End the report with exactly one line of the form [VERDICT: X] where X is one of: STRONG BUY, BUY, HOLD, SELL. No text may follow that line.
`)

	return sb.String(), nil
}
