package storage

import (
	"fmt"
	"strconv"
	"time"

	"github.com/godruoyi/go-snowflake"
	"github.com/sgostarter/libcontrolpoints/controlpoint"
	"github.com/sgostarter/libcontrolpoints/controlpointinfo"
	"github.com/spf13/cast"
)

// Snapshot is an editor's parked copy of a ControlPointInfo. It is not a beatmap format.
type Snapshot struct {
	Revision  string         `yaml:"revision" json:"revision"`
	CreatedAt int64          `yaml:"createdAt" json:"createdAt"`
	Points    []*PointRecord `yaml:"points" json:"points"`
}

type PointRecord struct {
	Kind   string         `yaml:"kind" json:"kind"`
	Time   float64        `yaml:"time" json:"time"`
	Fields map[string]any `yaml:"fields,omitempty" json:"fields,omitempty"`
}

func NewRevision() string {
	return strconv.FormatUint(snowflake.ID(), 36)
}

// Encode captures every point of info. Kinds without a codec fail the whole snapshot.
func Encode(info *controlpointinfo.Info) (snapshot *Snapshot, err error) {
	snapshot = &Snapshot{
		Revision:  NewRevision(),
		CreatedAt: time.Now().Unix(),
	}

	for _, cp := range info.AllPoints() {
		codec, ok := codecOf(cp.Kind())
		if !ok {
			err = fmt.Errorf("%s: %w", cp.Kind(), ErrNoCodec)

			return nil, err
		}

		snapshot.Points = append(snapshot.Points, &PointRecord{
			Kind:   cp.Kind().String(),
			Time:   cp.Time(),
			Fields: codec.Encode(cp),
		})
	}

	return
}

// Decode places the points of snapshot into info as stored, redundant ones included, so that a
// restored Info equals the encoded one. Every record is tried; the first failure is returned.
func Decode(snapshot *Snapshot, info *controlpointinfo.Info) (err error) {
	if snapshot == nil {
		return ErrNilSnapshot
	}

	for idx, record := range snapshot.Points {
		e := decodeRecord(record, info)
		if e != nil && err == nil {
			err = fmt.Errorf("record %s: %w", cast.ToString(idx), e)
		}
	}

	return
}

func decodeRecord(record *PointRecord, info *controlpointinfo.Info) error {
	if record == nil {
		return ErrBadRecord
	}

	kind, ok := controlpoint.ParseKind(record.Kind)
	if !ok {
		return fmt.Errorf("%s: %w", record.Kind, ErrNoCodec)
	}

	codec, ok := codecOf(kind)
	if !ok {
		return fmt.Errorf("%s: %w", record.Kind, ErrNoCodec)
	}

	cp, err := codec.Decode(record.Time, record.Fields)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", record.Kind, ErrBadRecord, err)
	}

	_, err = info.Place(cp)

	return err
}

// Restore builds a fresh Info from snapshot.
func Restore(snapshot *Snapshot, cfg *controlpointinfo.Config) (info *controlpointinfo.Info, err error) {
	info = controlpointinfo.NewInfo(cfg, nil)

	err = Decode(snapshot, info)

	return
}
