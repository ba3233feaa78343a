package criteria

import (
	"os"

	"github.com/aretw0/domaingen/pkg/domain"
)

// Load reads criteria from files. The XML format is used iff typesPath is set;
// otherwise criteriaPath is read in the text format.
func Load(criteriaPath, typesPath string, opts ...Option) ([]domain.Criterion, error) {
	o := newOptions(opts)

	cf, err := os.Open(criteriaPath)
	if err != nil {
		return nil, &domain.InputFormatError{File: criteriaPath, Reason: "cannot open criteria file", Err: err}
	}
	defer cf.Close()

	if typesPath == "" {
		o.logger.Info("importing criteria", "file", criteriaPath, "format", "text")
		return LoadText(criteriaPath, cf, opts...)
	}

	tf, err := os.Open(typesPath)
	if err != nil {
		return nil, &domain.InputFormatError{File: typesPath, Reason: "cannot open criterion types file", Err: err}
	}
	defer tf.Close()

	o.logger.Info("importing criteria", "file", criteriaPath, "types", typesPath, "format", "xml")
	return LoadXML(criteriaPath, cf, typesPath, tf, opts...)
}
