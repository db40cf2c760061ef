package app

import (
	"system-packages/internal/adapters"
	"system-packages/internal/ports"
)

type Service struct {
	Artifacts  ports.ArtifactSourcePort
	Archives   ports.ArchivePort
	Properties ports.PropertiesReaderPort
	Output     func(dir string) ports.OutputPort
}

func NewService() Service {
	return Service{
		Artifacts:  adapters.NewArtifactFileAdapter(),
		Archives:   adapters.NewArchiveFileAdapter(),
		Properties: adapters.NewPropertiesReaderAdapter(),
		Output: func(dir string) ports.OutputPort {
			return adapters.NewOutputFileAdapter(dir)
		},
	}
}
