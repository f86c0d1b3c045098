// Package diagnosis stores crop disease diagnoses taken in the field and
// syncs them when connectivity returns.
package diagnosis

import (
	"crypto/sha256"
	"encoding/binary"
)

// Identification is what the identifier returns for an uploaded image.
type Identification struct {
	Disease         string
	Confidence      float64
	Treatment       string
	OrganicSolution string
}

// Identifier maps image bytes to a disease identification.
type Identifier interface {
	Identify(image []byte) (Identification, error)
}

// StubIdentifier is a placeholder, not a classifier: it picks from a fixed
// catalogue deterministically by image hash so the same photo always yields
// the same answer. Swap in a real model API client for production use.
type StubIdentifier struct{}

var stubCatalogue = []Identification{
	{
		Disease:         "Tomato Early Blight",
		Confidence:      94.8,
		Treatment:       "Remove infected leaves. Apply copper-based fungicide every 7-10 days. Ensure proper spacing between plants for air circulation.",
		OrganicSolution: "Mix 2 tablespoons of baking soda, 1 tablespoon of vegetable oil, and a few drops of mild soap in 1 gallon of water. Spray on infected plants weekly.",
	},
	{
		Disease:         "Wheat Leaf Rust",
		Confidence:      88.7,
		Treatment:       "Apply fungicide with active ingredients like tebuconazole or propiconazole. Remove volunteer wheat plants that may harbor the disease.",
		OrganicSolution: "Spray a mixture of 1 part milk to 10 parts water twice a week. Plant rust-resistant wheat varieties in the future.",
	},
	{
		Disease:         "Rice Blast",
		Confidence:      91.2,
		Treatment:       "Apply fungicides containing tricyclazole or azoxystrobin. Avoid excess nitrogen fertilization.",
		OrganicSolution: "Apply compost tea as a foliar spray. Maintain balanced field water levels and avoid water stress.",
	},
	{
		Disease:         "Apple Scab",
		Confidence:      89.5,
		Treatment:       "Apply fungicides at 7-14 day intervals from bud break until rainy season ends. Prune trees to improve air circulation.",
		OrganicSolution: "Spray trees with neem oil or a mixture of 3 tablespoons of lime sulfur per gallon of water during the dormant season.",
	},
}

func (StubIdentifier) Identify(image []byte) (Identification, error) {
	h := sha256.Sum256(image)
	idx := binary.BigEndian.Uint32(h[:4]) % uint32(len(stubCatalogue))
	return stubCatalogue[idx], nil
}
