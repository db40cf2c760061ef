package ports

type OutputPort interface {
	WriteSystemPackages(content string) (string, error)
	WriteReport(content string) (string, error)
}
