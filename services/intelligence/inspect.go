// File: services/intelligence/inspect.go
package ai

import (
	"context"
	"encoding/json"
	"strings"

	"repairdesk/models"
)

// inspectPrompt asks for a strict JSON damage report from a single photo.
const inspectPrompt = `
You are an expert TV and electronics repair technician in Bangladesh.
Analyze this image and identify any damage or issues.

Provide:
1. A list of visible damage (each item max 10 words)
2. Severity: "Low", "Medium", or "High"
3. Likely cause of the damage
4. Estimated repair cost range in BDT (if possible)

Output JSON only:
{
  "damage": ["damage 1", "damage 2"],
  "severity": "Low|Medium|High",
  "likelyCause": "Brief explanation",
  "estimatedCostMin": 500,
  "estimatedCostMax": 2000
}
`

// Inspect runs a one-shot vision diagnosis on a photo, outside of any
// conversation. The same failover ladder as chat applies.
func (s *DefaultChatService) Inspect(ctx context.Context, image []byte, imageMIME string) (*models.DamageReport, error) {
	reply, err := invokeWithFailover(ctx, s.Invoker, s.Primary, s.Fallback,
		inspectPrompt, nil, "Analyze this image.", image, imageMIME, s.Policy)
	if err != nil {
		return nil, err
	}

	if report := parseDamageReport(reply); report != nil {
		return report, nil
	}
	// The model drifted off format; hand back the raw observation.
	return &models.DamageReport{
		Severity: "Unknown",
		RawText:  reply,
	}, nil
}

func parseDamageReport(reply string) *models.DamageReport {
	for i := 0; i < len(reply); i++ {
		if reply[i] != '{' {
			continue
		}
		var report models.DamageReport
		if err := json.NewDecoder(strings.NewReader(reply[i:])).Decode(&report); err != nil {
			continue
		}
		if len(report.Damage) == 0 && report.Severity == "" {
			continue
		}
		return &report
	}
	return nil
}
