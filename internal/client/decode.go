package client

import (
	"fmt"

	"dogceo/browser/internal/domain"

	"github.com/tidwall/gjson"
)

const statusSuccess = "success"

// envelope validates the {"status": ..., "message": ...} wrapper every
// Dog CEO endpoint uses and returns the message.
func envelope(body []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, fmt.Errorf("%w: malformed JSON body", domain.ErrNetwork)
	}

	status := gjson.GetBytes(body, "status")
	message := gjson.GetBytes(body, "message")
	if status.String() != statusSuccess {
		return gjson.Result{}, fmt.Errorf("%w: status %q: %s", domain.ErrNetwork, status.String(), message.String())
	}
	if !message.Exists() {
		return gjson.Result{}, fmt.Errorf("%w: response has no message", domain.ErrEmptyResult)
	}

	return message, nil
}

// parseBreedList decodes the breed map in document order. encoding/json
// would lose the order of object keys.
func parseBreedList(body []byte) ([]domain.Group, error) {
	message, err := envelope(body)
	if err != nil {
		return nil, err
	}
	if !message.IsObject() {
		return nil, fmt.Errorf("%w: breed list is not an object", domain.ErrNetwork)
	}

	groups := make([]domain.Group, 0)
	var decodeErr error
	message.ForEach(func(name, subs gjson.Result) bool {
		if !subs.IsArray() {
			decodeErr = fmt.Errorf("%w: sub-breeds of %q are not a list", domain.ErrNetwork, name.String())
			return false
		}

		group := domain.Group{Name: name.String(), SubBreeds: []string{}}
		for _, sub := range subs.Array() {
			group.SubBreeds = append(group.SubBreeds, sub.String())
		}
		groups = append(groups, group)
		return true
	})
	if decodeErr != nil {
		return nil, decodeErr
	}

	return groups, nil
}

func parseImageList(body []byte) ([]string, error) {
	message, err := envelope(body)
	if err != nil {
		return nil, err
	}

	var images []string
	switch {
	case message.IsArray():
		for _, img := range message.Array() {
			if url := img.String(); url != "" {
				images = append(images, url)
			}
		}
	case message.Type == gjson.String && message.String() != "":
		// a single random image is returned as a bare string
		images = append(images, message.String())
	}

	if len(images) == 0 {
		return nil, fmt.Errorf("%w: no images", domain.ErrEmptyResult)
	}
	return images, nil
}

// parseMetadata accepts an object message as-is. Anything else carries no
// attributes.
func parseMetadata(body []byte) (domain.Metadata, error) {
	message, err := envelope(body)
	if err != nil {
		return nil, err
	}
	if !message.IsObject() {
		return nil, fmt.Errorf("%w: breed info is not an object", domain.ErrEmptyResult)
	}

	raw, ok := message.Value().(map[string]any)
	if !ok || len(raw) == 0 {
		return nil, fmt.Errorf("%w: breed info has no attributes", domain.ErrEmptyResult)
	}

	return domain.Metadata(raw), nil
}
