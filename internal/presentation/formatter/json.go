package formatter

import (
	"fmt"
	"os"

	"github.com/bytedance/sonic"

	"github.com/twlf/activity-tracker/internal/core/model"
)

type JSONFormatter struct{}

func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

func (f *JSONFormatter) Format(sessions []model.PersistedSession) error {
	data, err := sonic.MarshalIndent(sessions, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(os.Stdout, string(data))
	return err
}
