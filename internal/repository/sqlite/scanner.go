package sqlite

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// ScanValue scans the value column of a kv_store row
func ScanValue(scanner Scanner) (string, error) {
	var value string
	if err := scanner.Scan(&value); err != nil {
		return "", err
	}
	return value, nil
}
