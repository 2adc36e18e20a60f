// Package warning carries advisory diagnostics produced while parsing.
// Warnings never affect control flow.
package warning

import (
	"fmt"
	"sync"

	"github.com/pattyshack/gt/parseutil"
	"github.com/tliron/commonlog"
)

type Id string

const (
	Generic               = Id("")
	ShadowingVariable     = Id("shadowing-variable")
	StatementNotReached   = Id("statement-not-reached")
	AssignmentInCondition = Id("assignment-in-condition")
	AmbiguousArgument     = Id("ambiguous-argument")
	MethodRedefined       = Id("method-redefined")
)

type Sink interface {
	Warn(pos parseutil.StartEndPos, msg string)
	Warning(id Id, pos parseutil.StartEndPos, msg string)
}

type Warning struct {
	parseutil.StartEndPos

	Id      Id
	Message string
}

func (warning Warning) String() string {
	if warning.Id == Generic {
		return fmt.Sprintf("%s: warning: %s", warning.Loc(), warning.Message)
	}
	return fmt.Sprintf(
		"%s: warning: %s [%s]",
		warning.Loc(),
		warning.Message,
		warning.Id)
}

// Collector records warnings in emission order and mirrors them to the
// garnet.warning logger.
type Collector struct {
	mutex    sync.Mutex
	warnings []Warning

	log commonlog.Logger
}

var _ Sink = &Collector{}

func NewCollector() *Collector {
	return &Collector{
		log: commonlog.GetLogger("garnet.warning"),
	}
}

func (collector *Collector) Warn(pos parseutil.StartEndPos, msg string) {
	collector.Warning(Generic, pos, msg)
}

func (collector *Collector) Warning(
	id Id,
	pos parseutil.StartEndPos,
	msg string,
) {
	warning := Warning{
		StartEndPos: pos,
		Id:          id,
		Message:     msg,
	}

	collector.mutex.Lock()
	collector.warnings = append(collector.warnings, warning)
	collector.mutex.Unlock()

	if collector.log != nil {
		collector.log.Warning(warning.String())
	}
}

func (collector *Collector) Warnings() []Warning {
	collector.mutex.Lock()
	defer collector.mutex.Unlock()

	result := make([]Warning, len(collector.warnings))
	copy(result, collector.warnings)
	return result
}

func (collector *Collector) Messages() []string {
	result := []string{}
	for _, warning := range collector.Warnings() {
		result = append(result, warning.Message)
	}
	return result
}

// Discard drops every warning.
type Discard struct{}

func (Discard) Warn(parseutil.StartEndPos, string) {}

func (Discard) Warning(Id, parseutil.StartEndPos, string) {}
