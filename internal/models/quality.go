package models

// Quality is the provider's real quality label of a stream variant, compared exactly.
type Quality string

const (
	Quality4K    Quality = "4K"
	Quality1080p Quality = "1080p"
	Quality720p  Quality = "720p"
	QualityHDTV  Quality = "HDTV"
	Quality480p  Quality = "480p"
	Quality360p  Quality = "360p"
)

// QualityRanking lists the recognized labels from most to least preferred.
var QualityRanking = []Quality{
	Quality4K,
	Quality1080p,
	Quality720p,
	QualityHDTV,
	Quality480p,
	Quality360p,
}

// String returns the label itself.
func (q Quality) String() string {
	return string(q)
}
