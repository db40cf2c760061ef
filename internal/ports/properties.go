package ports

// PropertiesReaderPort reads a single property from a Java properties file.
type PropertiesReaderPort interface {
	ReadProperty(path string, key string) (string, error)
}
