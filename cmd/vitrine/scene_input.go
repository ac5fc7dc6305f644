package main

import (
	"fmt"
	"os"

	"vitrine/internal/config"
	"vitrine/internal/scene"
)

// loadScene reads and decodes a scene payload file. Malformed object entries
// degrade to defaults rather than failing the whole load.
func loadScene(path string) (scene.Payload, error) {
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return scene.Payload{}, err
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return scene.Payload{}, fmt.Errorf("read scene file: %w", err)
	}
	payload, err := scene.Deserialize(data)
	if err != nil {
		return scene.Payload{}, fmt.Errorf("decode scene file %s: %w", path, err)
	}
	return payload, nil
}

// loadFile reads an auxiliary input such as a thumbnail snapshot or raw
// object payload. An empty path yields nil bytes.
func loadFile(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
