package nasapower

const DefaultBaseURL = "https://power.larc.nasa.gov"

// FillValue is the documented missing-value sentinel in POWER daily
// responses. Observations carrying it are surfaced as NaN so the
// aggregation can skip them.
const FillValue = -999.0

// Parameter codes as POWER names them.
const (
	ParamTemperature   = "T2M"
	ParamPrecipitation = "PRECTOTCORR"
)

// The daily point endpoint nests its values under
// properties.parameter.<code>, keyed by YYYYMMDD date strings.
type powerResponse struct {
	Properties *powerProperties `json:"properties"`
}

type powerProperties struct {
	Parameter map[string]map[string]float64 `json:"parameter"`
}
