package model

import (
	"math"

	"spectra/spectrum/hist"
)

// Background 本底模型: f(E) = alpha + beta*E + gamma*exp(-delta*E)
type Background struct {
	Alpha float64 `yaml:"alpha"`
	Beta  float64 `yaml:"beta"`
	Gamma float64 `yaml:"gamma"`
	Delta float64 `yaml:"delta"`
}

func DefaultBackground() Background {
	return Background{
		Alpha: 0.005,
		Beta:  -0.00001,
		Gamma: 0.08,
		Delta: 0.015,
	}
}

func (b Background) Eval(energy float64) float64 {
	return b.Alpha + b.Beta*energy + b.Gamma*math.Exp(-b.Delta*energy)
}

// Model 以闭包形式交给 Histogram.ChiSquare
func (b Background) Model() hist.Model {
	return b.Eval
}
