package dbtypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConditionReportScanRoundTrip(t *testing.T) {
	grade := "B"
	km := int64(84250)
	reserve := int64(45000)
	report := ConditionReport{
		OverallGrade: &grade,
		OdometerKM:   &km,
		Exterior:     []string{"scratch_rear_bumper"},
		Mechanical:   []string{"oil_leak_minor"},
		ReservePrice: &reserve,
	}

	value, err := report.Value()
	require.NoError(t, err)

	var decoded ConditionReport
	require.NoError(t, decoded.Scan([]byte(value.(string))))
	assert.Equal(t, report, decoded)
}

func TestConditionReportScanNil(t *testing.T) {
	existing := ConditionReport{Exterior: []string{"dent"}}
	require.NoError(t, existing.Scan(nil))
	assert.Empty(t, existing.Exterior)
}

func TestConditionReportScanUnsupported(t *testing.T) {
	var report ConditionReport
	assert.Error(t, report.Scan(42))
}
