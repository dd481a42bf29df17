package model

import (
	"io"

	"github.com/goccy/go-json"

	"github.com/YuminosukeSato/scistat/pkg/errors"
)

// SaveWeights はModelWeightsをJSONとしてio.Writerに書き出す
//
// ファイルの作成・クローズは呼び出し側の責任とする。
//
// 使用例:
//
//	var buf bytes.Buffer
//	w, _ := m.ExportWeights()
//	err := model.SaveWeights(&buf, w)
func SaveWeights(w io.Writer, weights *ModelWeights) error {
	if weights == nil {
		return errors.NewValidationError("weights", "must not be nil", nil)
	}
	if err := weights.Validate(); err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(weights); err != nil {
		return errors.Wrap(err, "failed to encode model weights")
	}
	return nil
}

// LoadWeights はio.ReaderからModelWeightsを読み込み、妥当性を検証する
func LoadWeights(r io.Reader) (*ModelWeights, error) {
	var weights ModelWeights
	if err := json.NewDecoder(r).Decode(&weights); err != nil {
		return nil, errors.Wrap(err, "failed to decode model weights")
	}
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	return &weights, nil
}
