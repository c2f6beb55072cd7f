package email

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"charm-money/internal/cmi"
	"charm-money/internal/domain"
)

// ResultLabels son los textos fijos del email.
type ResultLabels struct {
	Title      string
	Date       string
	Code       string
	Type       string
	Family     string
	Scores     string
	Footer     string
	ViewReport string
	Copyright  string
	Tagline    string
}

// ResultValues son los datos del resultado que se muestran en el email.
type ResultValues struct {
	Date       string
	Code       string
	TypeName   string
	FamilyName string
	Scores     string
	ViewURL    string
}

// ResultEmail es el email listo para enviar.
type ResultEmail struct {
	Subject string
	Labels  ResultLabels
	Values  ResultValues
	HTML    string
}

// ResultEmailInput agrupa lo necesario para armar el email.
type ResultEmailInput struct {
	Locale      string
	Code        string
	Result      domain.Result
	TraitScores domain.TraitScores
	CreatedAt   time.Time
	BaseURL     string
}

const fallbackBaseURL = "https://charm-money.vercel.app"

var defaultLabels = ResultLabels{
	Title:      "Analysis Complete",
	Date:       "Assessment Date",
	Code:       "Unique ID",
	Type:       "Archetype",
	Family:     "Family",
	Scores:     "Trait Breakdown",
	Footer:     "You can revisit your results anytime.",
	ViewReport: "View Full Report",
	Copyright:  "©2025 Charm.",
	Tagline:    "Designed with clarity and compassion.",
}

// BuildResultEmail arma asunto, labels, valores y cuerpo HTML.
func BuildResultEmail(in ResultEmailInput) (ResultEmail, error) {
	locale := strings.TrimSpace(in.Locale)
	if locale == "" {
		locale = "en"
	}
	createdAt := in.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	scores := in.TraitScores
	if len(scores) == 0 {
		scores = in.Result.TraitScores
	}

	typeName := in.Result.Type.Name
	if typeName == "" {
		typeName = fmt.Sprintf("Type %d", in.Result.Type.ID)
	}
	familyName := in.Result.Family.Name
	if familyName == "" {
		familyName = "Pattern Family"
	}

	msg := ResultEmail{
		Labels: defaultLabels,
		Values: ResultValues{
			Date:       createdAt.Format("Jan 02, 2006"),
			Code:       in.Code,
			TypeName:   typeName,
			FamilyName: familyName,
			Scores:     FormatScores(scores),
			ViewURL:    ResultURL(in.BaseURL, locale, in.Code),
		},
	}
	msg.Subject = fmt.Sprintf("%s: %s", msg.Labels.Title, msg.Values.Code)

	var buf bytes.Buffer
	if err := resultTemplate.Execute(&buf, msg); err != nil {
		return ResultEmail{}, fmt.Errorf("render result email: %w", err)
	}
	msg.HTML = buf.String()
	return msg, nil
}

// FormatScores produce "Closeness: 68% | Control: 45% | ..." en orden fijo.
// Un trait sin score se muestra como 0%.
func FormatScores(scores domain.TraitScores) string {
	order := cmi.Traits()
	parts := make([]string, 0, len(order))
	for _, t := range order {
		percent := 0
		if score, ok := scores[t]; ok {
			percent = cmi.AxisPercent(score)
		}
		parts = append(parts, fmt.Sprintf("%s: %d%%", cmi.TraitLabel(t), percent))
	}
	return strings.Join(parts, " | ")
}

// ResultURL arma el link publico al reporte.
func ResultURL(baseURL, locale, code string) string {
	origin := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if origin == "" {
		origin = fallbackBaseURL
	}
	return fmt.Sprintf("%s/%s/cmi-test/result/%s", origin, locale, code)
}

var resultTemplate = template.Must(template.New("result").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Georgia, serif; background: #f7f4ef; color: #2b2b2b; padding: 24px;">
  <table role="presentation" width="100%" style="max-width: 560px; margin: 0 auto; background: #ffffff; border-radius: 16px; padding: 32px;">
    <tr><td>
      <h1 style="margin: 0 0 24px;">{{.Labels.Title}}</h1>
      <p><strong>{{.Labels.Date}}:</strong> {{.Values.Date}}</p>
      <p><strong>{{.Labels.Code}}:</strong> {{.Values.Code}}</p>
      <p><strong>{{.Labels.Type}}:</strong> {{.Values.TypeName}}</p>
      <p><strong>{{.Labels.Family}}:</strong> {{.Values.FamilyName}}</p>
      <p><strong>{{.Labels.Scores}}:</strong><br>{{.Values.Scores}}</p>
      <p style="margin: 32px 0;">
        <a href="{{.Values.ViewURL}}" style="background: #2b2b2b; color: #ffffff; padding: 12px 20px; border-radius: 999px; text-decoration: none;">{{.Labels.ViewReport}}</a>
      </p>
      <p style="color: #777777;">{{.Labels.Footer}}</p>
      <p style="color: #999999; font-size: 12px;">{{.Labels.Copyright}} {{.Labels.Tagline}}</p>
    </td></tr>
  </table>
</body>
</html>
`))
