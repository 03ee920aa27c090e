package report

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// GenerateReportPath creates a timestamped report filename in dir, named
// after the input.
func GenerateReportPath(dir, input, ext string) string {
	base := filepath.Base(input)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	name = strings.ReplaceAll(name, " ", "_")
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return filepath.Join(dir, fmt.Sprintf("%s_%s%s", name, timestamp, ext))
}
