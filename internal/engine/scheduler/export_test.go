package scheduler

// Jobs returns a copy of the in-flight job statuses.
// This is exported for testing purposes only.
func (s *Scheduler) Jobs() map[string]Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	jobs := make(map[string]Status, len(s.jobs))
	for path, j := range s.jobs {
		jobs[path] = j.status
	}
	return jobs
}
