package www

import (
	"log/slog"
	"net/http"

	_ "embed"

	"github.com/odonslab/dengueview-go/cases"
	"github.com/odonslab/dengueview-go/months"
)

type casesPageData struct {
	Months     []string
	Rows       []cases.DisplayRow
	Mosquitoes []cases.MosquitoEstimate
	Larvae     larvaeSurvey
	References []cases.Reference
}

type larvaeSurvey struct {
	Sites    int
	Homes    int
	Outdoors int
}

// NewCasesHandler serves the static part of the report: the reported
// case table, the mosquito population section and the references. It
// never depends on the climate fetch having succeeded.
func NewCasesHandler(logger *slog.Logger, tm *TemplateManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		w.Header().Set("Content-Type", "text/html")

		data := casesPageData{
			Months:     months.Abbrs(),
			Rows:       cases.DisplayTable(),
			Mosquitoes: cases.MosquitoEstimates(),
			Larvae: larvaeSurvey{
				Sites:    cases.LarvaeSites2024,
				Homes:    cases.LarvaeHomes2024,
				Outdoors: cases.LarvaeOutdoors2024,
			},
			References: cases.References(),
		}

		if err := tm.ExecuteToWriter("cases.html", data, &w); err != nil {
			logger.Error("handling cases request", slog.Any("error", err))
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}
