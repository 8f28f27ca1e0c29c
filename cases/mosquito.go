package cases

// Mosquito population findings for Rawalpindi. The 2016 figures come
// from an ovitrap study (Journal of Vector Borne Diseases); the 2024
// figures from the district larvae-site survey. This section is entirely
// static and renders even when the climate fetch fails.

const (
	// 2016 ovitrap study.
	mosquitoesEmerged2016 = 3484
	aegyptiShare          = 0.46
	albopictusShare       = 0.54

	// 2024 larvae-site survey, as of June 26, 2024.
	LarvaeSites2024    = 8064
	LarvaeHomes2024    = 6735
	LarvaeOutdoors2024 = 1361

	// Baseline the 2024 projection is scaled against.
	surveyBaselineSites = 8064.0
)

type MosquitoEstimate struct {
	Year       int
	Aegypti    float64
	Albopictus float64
}

// MosquitoEstimates returns the species split for 2016 and the 2024
// projection. The 2024 numbers scale the 2016 emergence by the ratio of
// detected larvae sites, keeping the original species proportions.
func MosquitoEstimates() []MosquitoEstimate {
	base := float64(mosquitoesEmerged2016)
	projected := base * float64(LarvaeSites2024) / surveyBaselineSites
	return []MosquitoEstimate{
		{Year: 2016, Aegypti: base * aegyptiShare, Albopictus: base * albopictusShare},
		{Year: 2024, Aegypti: projected * aegyptiShare, Albopictus: projected * albopictusShare},
	}
}

type Reference struct {
	Title  string
	Source string
	URL    string
}

func References() []Reference {
	return []Reference{
		{
			Title:  "Dengue Cases Data from 2013-2023 in Rawalpindi & Adjacent Hospitals",
			Source: "Rawalpindi Medical University (RMU) DDEAG Database",
			URL:    "https://rmur.edu.pk/rmu-ddeag/",
		},
		{
			Title:  "2016 Study on Aedes Mosquitoes in Rawalpindi",
			Source: "Journal of Vector Borne Diseases",
			URL:    "https://journals.lww.com/jvbd/fulltext/2016/53020/spatial_distribution_and_insecticide.7.aspx",
		},
		{
			Title:  "2024 Report on Dengue Larvae in Rawalpindi",
			Source: "Medical News Pakistan, June 26, 2024",
			URL:    "https://www.medicalnews.pk/26-Jun-2024/8-064-dengue-larvae-sites-detected-in-rawalpindi",
		},
	}
}
