package splice

import "github.com/sirupsen/logrus"

// Job pairs a document with the fragments destined for its regions.
type Job struct {
	Name      string
	Path      string
	Fragments []Fragment
}

// Run splices every job in order. A failing document does not stop the
// batch; all failures are returned together as a *BatchError once every
// job has been attempted.
func (s *Splicer) Run(jobs []Job) ([]*Report, error) {
	reports := make([]*Report, 0, len(jobs))
	var failures []Failure
	for _, job := range jobs {
		report, err := s.Splice(job.Path, job.Fragments...)
		if err != nil {
			failures = append(failures, Failure{Path: job.Path, Err: err})
			continue
		}
		reports = append(reports, report)
	}

	s.log.WithFields(logrus.Fields{
		"action":    "batch",
		"documents": len(jobs),
		"failed":    len(failures),
	}).Info("Batch finished")

	if len(failures) > 0 {
		return reports, &BatchError{Failures: failures}
	}
	return reports, nil
}
