package sensor

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Landmark indices of the 21-point hand model used by common hand trackers.
const (
	thumbIP   = 3
	thumbTip  = 4
	indexPIP  = 6
	indexTip  = 8
	middlePIP = 10
	middleTip = 12
	ringPIP   = 14
	ringTip   = 16
	pinkyPIP  = 18
	pinkyTip  = 20

	landmarkCount = 21
)

// ErrBadPayload is wrapped by ParsePayload failures.
var ErrBadPayload = errors.New("bad finger payload")

// Hand is one tracked hand in normalized image coordinates with the origin
// in the upper left corner. Label is "Left" or "Right" as seen in a
// mirrored image.
type Hand struct {
	Label     string       `json:"label"`
	Landmarks [][2]float64 `json:"landmarks"`
}

type handsPayload struct {
	Hands []Hand `json:"hands"`
}

// CountRaised counts raised fingers across all hands. A thumb is raised
// when its tip lies outside its IP joint for the hand's side; any other
// finger is raised when its tip is above its PIP joint.
func CountRaised(hands []Hand) int {
	count := 0
	for _, h := range hands {
		if len(h.Landmarks) < landmarkCount {
			continue
		}
		lm := h.Landmarks
		switch h.Label {
		case "Left":
			if lm[thumbTip][0] > lm[thumbIP][0] {
				count++
			}
		case "Right":
			if lm[thumbTip][0] < lm[thumbIP][0] {
				count++
			}
		}
		for _, f := range [][2]int{
			{indexTip, indexPIP},
			{middleTip, middlePIP},
			{ringTip, ringPIP},
			{pinkyTip, pinkyPIP},
		} {
			if lm[f[0]][1] < lm[f[1]][1] {
				count++
			}
		}
	}
	return count
}

// ParsePayload decodes a gesture pipeline message. It accepts either a bare
// integer count or a JSON object {"hands": [...]} with raw landmarks.
func ParsePayload(payload []byte) (int, error) {
	text := strings.TrimSpace(string(payload))
	if text == "" {
		return 0, fmt.Errorf("sensor: empty payload: %w", ErrBadPayload)
	}
	if n, err := strconv.Atoi(text); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("sensor: negative count %d: %w", n, ErrBadPayload)
		}
		return n, nil
	}

	var hp handsPayload
	if err := json.Unmarshal([]byte(text), &hp); err != nil {
		return 0, fmt.Errorf("sensor: decode landmarks: %w: %v", ErrBadPayload, err)
	}
	return CountRaised(hp.Hands), nil
}
