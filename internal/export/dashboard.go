package export

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/chippeters/fedscope/internal/summary"
)

// dataPrefix and dataSuffix wrap the payload so the file can be loaded
// with a plain <script> tag.
const (
	dataPrefix = "const DASHBOARD_DATA = "
	dataSuffix = ";\n"
)

// WriteDashboard serialises the payload as a single top-level constant
// assignment at path.
func WriteDashboard(d *summary.Dashboard, path string) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return eris.Wrap(err, "export: marshal dashboard payload")
	}

	var buf bytes.Buffer
	buf.Grow(len(dataPrefix) + len(payload) + len(dataSuffix))
	buf.WriteString(dataPrefix)
	buf.Write(payload)
	buf.WriteString(dataSuffix)

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return eris.Wrapf(err, "export: write %s", path)
	}

	zap.L().Info("wrote dashboard data",
		zap.String("path", path),
		zap.Int("bytes", buf.Len()),
		zap.Int("agencies", len(d.AllAgencies)),
		zap.Int("states", len(d.States)),
	)
	return nil
}
