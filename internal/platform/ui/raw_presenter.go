// internal/platform/ui/raw_presenter.go
package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"
)

// LogFormat define el formato de salida para el modo raw
type LogFormat string

const (
	LogFormatText LogFormat = "text" // Formato logfmt (default)
	LogFormatJSON LogFormat = "json" // Formato JSON estructurado
)

// RawPresenter implementa el Presenter para salida sin TTY
// (pipes, CI, --format table/json): una línea por evento.
type RawPresenter struct {
	out    io.Writer
	format LogFormat
	mu     sync.Mutex
	now    func() time.Time
}

var _ Presenter = (*RawPresenter)(nil)

// NewRawPresenter crea un nuevo RawPresenter que escribe en out
func NewRawPresenter(out io.Writer, format LogFormat) *RawPresenter {
	if format != LogFormatJSON {
		format = LogFormatText
	}
	return &RawPresenter{
		out:    out,
		format: format,
		now:    time.Now,
	}
}

// log escribe un evento en el formato configurado
func (r *RawPresenter) log(level, message string, fields map[string]interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()

	timestamp := r.now().UTC().Format(time.RFC3339)

	if r.format == LogFormatJSON {
		r.logJSON(timestamp, level, message, fields)
	} else {
		r.logText(timestamp, level, message, fields)
	}
}

// logText escribe en formato logfmt: timestamp LEVEL message key=value key2=value2
func (r *RawPresenter) logText(timestamp, level, message string, fields map[string]interface{}) {
	parts := []string{timestamp, fmt.Sprintf("%-5s", level), message}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, r.formatValue(fields[k])))
	}

	fmt.Fprintln(r.out, strings.Join(parts, " "))
}

// logJSON escribe en formato JSON estructurado
func (r *RawPresenter) logJSON(timestamp, level, message string, fields map[string]interface{}) {
	entry := map[string]interface{}{
		"timestamp": timestamp,
		"level":     level,
		"message":   message,
	}
	if len(fields) > 0 {
		entry["data"] = fields
	}

	data, err := json.Marshal(entry)
	if err != nil {
		fmt.Fprintf(r.out, `{"level":"ERROR","message":%q}`+"\n", err.Error())
		return
	}
	fmt.Fprintln(r.out, string(data))
}

// formatValue formatea valores para logfmt (entrecomilla strings con espacios)
func (r *RawPresenter) formatValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		if val == "" || strings.ContainsAny(val, " =\"") {
			return fmt.Sprintf("%q", val)
		}
		return val
	case time.Duration:
		return val.String()
	case []string:
		return r.formatValue(strings.Join(val, ","))
	default:
		return fmt.Sprintf("%v", val)
	}
}

// Start inicia la presentación
func (r *RawPresenter) Start(info RunInfo) {
	r.log("INFO", "run_started", map[string]interface{}{
		"target":    info.Target,
		"run_id":    info.RunID,
		"output":    info.OutputDir,
		"stages":    info.Stages,
		"analyzers": info.Analyzers,
	})
}

// StartStage notifica el inicio de un stage
func (r *RawPresenter) StartStage(stage StageInfo) {
	r.log("INFO", "stage_started", map[string]interface{}{
		"stage": stage.Number,
		"name":  stage.Name,
		"tools": stage.Tools,
	})
}

// SkipStage notifica un stage reanudado
func (r *RawPresenter) SkipStage(stage StageInfo, loaded int) {
	fields := map[string]interface{}{
		"stage": stage.Number,
		"name":  stage.Name,
	}
	if loaded >= 0 {
		fields["loaded"] = loaded
	}
	r.log("INFO", "stage_skipped", fields)
}

// FinishStage notifica la finalización de un stage
func (r *RawPresenter) FinishStage(stage StageInfo, duration time.Duration, produced int) {
	r.log("INFO", "stage_completed", map[string]interface{}{
		"stage":    stage.Number,
		"name":     stage.Name,
		"duration": duration,
		"items":    produced,
	})
}

// ProviderResult reporta un proveedor
func (r *RawPresenter) ProviderResult(name string, status Status, count int) {
	level := "INFO"
	if status == StatusError {
		level = "WARN"
	}
	r.log(level, "provider_result", map[string]interface{}{
		"provider": name,
		"status":   status.String(),
		"hosts":    count,
	})
}

// HostList emite la lista completa en un solo evento
func (r *RawPresenter) HostList(title string, hosts []string) {
	r.log("INFO", "host_list", map[string]interface{}{
		"title": title,
		"count": len(hosts),
		"hosts": hosts,
	})
}

// Alert reporta un host de alto valor
func (r *RawPresenter) Alert(host, keyword string) {
	r.log("ALERT", "high_value_target", map[string]interface{}{
		"host":    host,
		"keyword": keyword,
	})
}

// HighRisk emite un evento por host de riesgo alto
func (r *RawPresenter) HighRisk(rows []RiskRow) {
	if len(rows) == 0 {
		r.log("INFO", "no_high_risk_targets", nil)
		return
	}
	for _, row := range rows {
		r.log("ALERT", "high_risk_target", map[string]interface{}{
			"host":    row.Host,
			"summary": row.Summary,
			"source":  row.Source,
			"bounty":  row.Bounty,
		})
	}
}

// Info muestra un mensaje informativo
func (r *RawPresenter) Info(msg string) {
	r.log("INFO", msg, nil)
}

// Warning muestra una advertencia
func (r *RawPresenter) Warning(msg string) {
	r.log("WARN", msg, nil)
}

// Error muestra un error
func (r *RawPresenter) Error(msg string) {
	r.log("ERROR", msg, nil)
}

// Finish finaliza la presentación con estadísticas finales
func (r *RawPresenter) Finish(stats RunStats) {
	r.log("INFO", "run_completed", map[string]interface{}{
		"duration":   stats.Duration,
		"subdomains": stats.Subdomains,
		"live":       stats.Live,
		"alerts":     stats.Alerts,
		"analyzed":   stats.Analyzed,
		"high_risk":  stats.HighRisk,
		"output":     stats.OutputDir,
	})
}

// Close limpia recursos
func (r *RawPresenter) Close() error {
	return nil
}
