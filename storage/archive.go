package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/Dosada05/tournament-bracket/models"
)

// ArchiveRecord is the final state of a settled tournament.
type ArchiveRecord struct {
	Tournament *models.Tournament `json:"tournament"`
	Bracket    *models.Bracket    `json:"bracket"`
	Payout     *models.Payout     `json:"payout"`
}

// BracketArchiver writes settled tournaments to object storage as JSON.
type BracketArchiver struct {
	uploader FileUploader
}

func NewBracketArchiver(uploader FileUploader) *BracketArchiver {
	return &BracketArchiver{uploader: uploader}
}

func ArchiveKey(tournamentID string) string {
	return fmt.Sprintf("tournaments/%s/final.json", tournamentID)
}

// Archive uploads rec and returns where it can be fetched from.
func (a *BracketArchiver) Archive(ctx context.Context, rec ArchiveRecord) (*UploadResult, error) {
	if rec.Tournament == nil {
		return nil, fmt.Errorf("archive record has no tournament")
	}
	body, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to encode archive for tournament %s: %w", rec.Tournament.ID, err)
	}
	return a.uploader.Upload(ctx, ArchiveKey(rec.Tournament.ID), "application/json", bytes.NewReader(body))
}
