package routing

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/pitabwire/util"
)

//go:embed templates/*.html
var templatesFS embed.FS

var views = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// CaptchaPage implements GET /captcha by rendering the captcha view.
func CaptchaPage(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := views.ExecuteTemplate(w, "captcha", nil); err != nil {
		util.Log(req.Context()).WithError(err).Error("could not render captcha view")
	}
}
