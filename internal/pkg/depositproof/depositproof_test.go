package depositproof

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFORenderer_Render(t *testing.T) {
	out, err := NewFORenderer().Render(context.Background(), Document{
		CampaignID:   "SIMPSONS2020X00",
		SurveyUnitID: "SU1",
		UserID:       "INTW1",
		State:        "VALIDATED",
		Date:         time.Date(2023, 5, 17, 9, 30, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	doc := string(out)
	assert.True(t, strings.HasPrefix(doc, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, doc, `xmlns:fo="http://www.w3.org/1999/XSL/Format"`)
	assert.Contains(t, doc, "Campaign: SIMPSONS2020X00")
	assert.Contains(t, doc, "Survey unit: SU1")
	assert.Contains(t, doc, "Submitted by: INTW1")
	assert.Contains(t, doc, "State: VALIDATED")
	assert.Contains(t, doc, "Date: 2023-05-17 09:30:00 UTC")
}

func TestFORenderer_ZeroDocument(t *testing.T) {
	out, err := NewFORenderer().Render(context.Background(), Document{})
	require.NoError(t, err)
	assert.Contains(t, string(out), "Deposit proof")
}
