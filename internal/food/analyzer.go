package food

import (
	"context"
	"encoding/base64"
	"errors"
	"math"
	"math/rand"
	"strings"
	"sync"

	"health-insights/internal/metrics"

	log "github.com/sirupsen/logrus"
)

const (
	maxFoodsPerImage = 3
	minConfidence    = 0.70
)

var (
	ErrEmptyImage   = errors.New("image is empty")
	ErrInvalidImage = errors.New("image is not valid base64")
)

type Item struct {
	Name string `json:"name"`
	Nutrients
	Confidence float64 `json:"confidence"`
}

type Analysis struct {
	Foods         []Item  `json:"foods"`
	TotalCalories float64 `json:"totalCalories"`
	TotalProtein  float64 `json:"totalProtein"`
	TotalCarbs    float64 `json:"totalCarbs"`
	TotalFat      float64 `json:"totalFat"`
}

// Analyzer is a stand-in for an image recognition backend: it picks foods
// from a fixed catalog at random.
type Analyzer struct {
	mu      sync.Mutex
	rnd     *rand.Rand
	metrics *metrics.Registry
}

func NewAnalyzer(rnd *rand.Rand, reg *metrics.Registry) *Analyzer {
	return &Analyzer{
		rnd:     rnd,
		metrics: reg,
	}
}

// Analyze "recognizes" one to three foods in a base64 image. A data URL
// prefix ("data:image/jpeg;base64,") is accepted.
func (a *Analyzer) Analyze(ctx context.Context, imageBase64 string) (*Analysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := checkImage(imageBase64); err != nil {
		a.metrics.Inc(metrics.FoodAnalysisErrorsTotal)
		return nil, err
	}

	a.mu.Lock()
	n := a.rnd.Intn(maxFoodsPerImage) + 1
	foods := make([]Item, 0, n)
	for i := 0; i < n; i++ {
		picked := catalog[a.rnd.Intn(len(catalog))]
		confidence := minConfidence + a.rnd.Float64()*(1-minConfidence)
		foods = append(foods, Item{
			Name:       picked.Name,
			Nutrients:  picked.Nutrients,
			Confidence: round2(confidence),
		})
	}
	a.mu.Unlock()

	analysis := &Analysis{Foods: foods}
	for _, f := range foods {
		analysis.TotalCalories += f.Calories
		analysis.TotalProtein += f.Protein
		analysis.TotalCarbs += f.Carbs
		analysis.TotalFat += f.Fat
	}
	analysis.TotalCalories = round2(analysis.TotalCalories)
	analysis.TotalProtein = round2(analysis.TotalProtein)
	analysis.TotalCarbs = round2(analysis.TotalCarbs)
	analysis.TotalFat = round2(analysis.TotalFat)

	a.metrics.Inc(metrics.FoodAnalysesTotal)
	a.metrics.Add(metrics.FoodItemsDetectedTotal, int64(len(foods)))

	log.WithFields(log.Fields{
		"foods":    len(foods),
		"calories": analysis.TotalCalories,
	}).Debug("food image analyzed")

	return analysis, nil
}

func checkImage(image string) error {
	image = strings.TrimSpace(image)
	if strings.HasPrefix(image, "data:") {
		if i := strings.Index(image, ","); i >= 0 {
			image = image[i+1:]
		}
	}
	if image == "" {
		return ErrEmptyImage
	}

	if _, err := base64.StdEncoding.DecodeString(image); err == nil {
		return nil
	}
	if _, err := base64.RawStdEncoding.DecodeString(image); err != nil {
		return ErrInvalidImage
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
