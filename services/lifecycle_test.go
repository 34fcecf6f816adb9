package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	apiError "github.com/techagentng/cleancity/errors"
	"github.com/techagentng/cleancity/models"
)

func TestNextStatus_AllowedEdges(t *testing.T) {
	cases := []struct {
		from models.ReportStatus
		ev   event
		to   models.ReportStatus
	}{
		{models.StatusPending, eventWithdraw, models.StatusWithdrawn},
		{models.StatusPending, eventEscalate, models.StatusEscalated},
		{models.StatusEscalated, eventAssign, models.StatusAssigned},
		{models.StatusPending, eventStartWorking, models.StatusWorking},
		{models.StatusEscalated, eventStartWorking, models.StatusWorking},
		{models.StatusAssigned, eventUploadEvidence, models.StatusAssigned},
		{models.StatusAssigned, eventMarkResolved, models.StatusPendingConfirmation},
		{models.StatusPendingConfirmation, eventConfirm, models.StatusResolved},
		{models.StatusWorking, eventConfirm, models.StatusResolved},
	}
	for _, tc := range cases {
		got, err := nextStatus(tc.from, tc.ev)
		assert.NoError(t, err, "%s from %s", tc.ev, tc.from)
		assert.Equal(t, tc.to, got)
	}
}

func TestNextStatus_RejectsIllegalEdges(t *testing.T) {
	cases := []struct {
		from models.ReportStatus
		ev   event
	}{
		{models.StatusEscalated, eventWithdraw},
		{models.StatusPending, eventAssign},
		{models.StatusEscalated, eventConfirm},
		{models.StatusAssigned, eventConfirm},
		{models.StatusPendingConfirmation, eventMarkResolved},
		{models.StatusWorking, eventAssign},
		{models.StatusEscalated, eventEscalate},
	}
	for _, tc := range cases {
		_, err := nextStatus(tc.from, tc.ev)
		assert.Equal(t, apiError.KindInvalidState, apiError.KindOf(err), "%s from %s", tc.ev, tc.from)
	}
}

func TestNextStatus_ResolvedIsTerminal(t *testing.T) {
	for ev := range transitions {
		_, err := nextStatus(models.StatusResolved, ev)
		assert.ErrorIs(t, err, apiError.ErrAlreadyResolved)
	}
}
