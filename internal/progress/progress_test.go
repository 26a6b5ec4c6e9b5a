package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScaledMapsRange(t *testing.T) {
	var got []int
	sink := Func(func(percent int, message string) {
		got = append(got, percent)
	})

	scaled := Scaled(sink, 20, 90)
	scaled.Report(0, "start")
	scaled.Report(50, "half")
	scaled.Report(100, "done")

	assert.Equal(t, []int{20, 55, 90}, got)
}

func TestScaledClampsInput(t *testing.T) {
	var got []int
	scaled := Scaled(Func(func(percent int, message string) {
		got = append(got, percent)
	}), 10, 95)

	scaled.Report(-20, "below")
	scaled.Report(250, "above")

	assert.Equal(t, []int{10, 95}, got)
}

func TestScaledNilParent(t *testing.T) {
	assert.NotPanics(t, func() {
		Scaled(nil, 0, 100).Report(50, "into the void")
	})
}

func TestNopDiscards(t *testing.T) {
	assert.NotPanics(t, func() {
		Nop.Report(42, "nothing listens")
	})
}
