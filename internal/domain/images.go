package domain

import "sync"

// ImageSet maps a breed key to its sample image URLs. Writes only insert
// or replace with a non-empty list, so a key never goes from present to
// absent. Safe for concurrent use.
type ImageSet struct {
	images map[string][]string
	mu     sync.RWMutex
}

func NewImageSet() *ImageSet {
	return &ImageSet{
		images: make(map[string][]string),
	}
}

// Record stores urls for key. Empty lists are ignored and reported as false.
func (s *ImageSet) Record(key string, urls []string) bool {
	if len(urls) == 0 {
		return false
	}

	stored := make([]string, len(urls))
	copy(stored, urls)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.images[key] = stored
	return true
}

// Get returns a copy of the images for key; nil when none are known.
func (s *ImageSet) Get(key string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	urls, ok := s.images[key]
	if !ok {
		return nil
	}
	out := make([]string, len(urls))
	copy(out, urls)
	return out
}

// First returns the first image for key, if any.
func (s *ImageSet) First(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	urls := s.images[key]
	if len(urls) == 0 {
		return "", false
	}
	return urls[0], true
}

func (s *ImageSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.images)
}
