package core

import (
	"context"
	"fmt"
	"io"

	"missioncontrol/internal/infra/codec"
)

// WriteSnapshot exports the store and encodes it to w.
func (s *Service) WriteSnapshot(ctx context.Context, w io.Writer, format codec.Format) error {
	snapshot, err := s.ExportState(ctx)
	if err != nil {
		return err
	}
	if err := codec.Encode(w, format, snapshot); err != nil {
		s.logger.Error("snapshot encode failed", "format", string(format), "error", err)
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// ReadSnapshot decodes a snapshot from r and imports it.
func (s *Service) ReadSnapshot(ctx context.Context, r io.Reader, format codec.Format) error {
	snapshot, err := codec.Decode(r, format)
	if err != nil {
		s.logger.Warn("snapshot decode failed", "format", string(format), "error", err)
		return fmt.Errorf("read snapshot: %w", err)
	}
	if err := s.ImportState(ctx, snapshot); err != nil {
		return err
	}
	s.logger.Info("snapshot imported", "missions", s.store.Len(), "capacity", s.store.Cap())
	return nil
}
