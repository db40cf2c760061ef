package adapters

import (
	"fmt"
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/magiconair/properties"

	"system-packages/internal/ports"
	"system-packages/internal/shared"
)

// PropertiesReaderAdapter reads baseline and generated properties files.
type PropertiesReaderAdapter struct{}

func NewPropertiesReaderAdapter() PropertiesReaderAdapter {
	return PropertiesReaderAdapter{}
}

func (a PropertiesReaderAdapter) ReadProperty(path string, key string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", shared.FileError(err, fmt.Sprintf("properties file not found: %s", path))
	}
	loader := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	props, err := loader.LoadFile(path)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("failed to parse properties file: %s", path)).
			WithCause(err)
	}
	value, ok := props.Get(key)
	if !ok {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("property %s missing from %s", key, path))
	}
	return value, nil
}

var _ ports.PropertiesReaderPort = PropertiesReaderAdapter{}
