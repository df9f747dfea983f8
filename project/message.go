package project

// PostMessageOptions configures a new site message.
type PostMessageOptions struct {
	// ProjectID references the owning project. Required.
	ProjectID string `json:"project_id"`

	// Author is the person posting. Required.
	Author string `json:"author"`
}

// PostMessage appends a new message to the site log.
func (s *Store) PostMessage(body string, opts PostMessageOptions) (*Message, error) {
	if body == "" {
		return nil, ErrEmptyBody
	}
	if opts.Author == "" {
		return nil, ErrEmptyAuthor
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireProject(opts.ProjectID); err != nil {
		return nil, err
	}

	now := s.now()
	created := Message{
		ID:        GenerateID(opts.Author+body, now),
		ProjectID: opts.ProjectID,
		Author:    opts.Author,
		Body:      body,
		CreatedAt: now,
	}

	s.messages = append(s.messages, created)
	s.notifyMessage(created)
	return &created, nil
}

// MessageFilter narrows ListMessages output.
type MessageFilter struct {
	// ProjectID keeps only messages in this project when non-empty.
	ProjectID string `json:"project_id,omitempty"`

	// Limit caps the number of messages returned, keeping the most
	// recent. Zero means no cap.
	Limit int `json:"limit,omitempty"`
}

// ListMessages returns messages in posting order.
func (s *Store) ListMessages(filter MessageFilter) ([]Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Message, 0, len(s.messages))
	for _, item := range s.messages {
		if filter.ProjectID != "" && item.ProjectID != filter.ProjectID {
			continue
		}
		out = append(out, item)
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[len(out)-filter.Limit:]
	}
	return out, nil
}
