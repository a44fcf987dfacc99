// Package suggestions holds per-guild configuration for the suggestion
// workflow: where suggestions land, where decided ones are mirrored, and
// which roles may decide them.
package suggestions

import "sync"

// Settings is one guild's suggestion configuration.
type Settings struct {
	Enabled         bool
	ChannelID       string
	ApprovedChannel string
	RejectedChannel string
	StaffRoles      []string
}

// Store keeps per-guild settings in memory. Guilds that were never
// configured read back as a disabled default.
type Store struct {
	mu     sync.Mutex
	guilds map[string]*Settings
}

func NewStore() *Store {
	return &Store{guilds: make(map[string]*Settings)}
}

func (s *Store) settings(guildID string) *Settings {
	st, ok := s.guilds[guildID]
	if !ok {
		st = &Settings{}
		s.guilds[guildID] = st
	}
	return st
}

// Get returns a copy of the guild's settings.
func (s *Store) Get(guildID string) Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.settings(guildID)
	out := *st
	out.StaffRoles = append([]string(nil), st.StaffRoles...)
	return out
}

// SetEnabled toggles the suggestion system for a guild.
func (s *Store) SetEnabled(guildID string, enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings(guildID).Enabled = enabled
}

// SetChannel sets the channel new suggestions are posted to.
func (s *Store) SetChannel(guildID, channelID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings(guildID).ChannelID = channelID
}

// SetApprovedChannel sets the channel approved suggestions are mirrored to.
func (s *Store) SetApprovedChannel(guildID, channelID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings(guildID).ApprovedChannel = channelID
}

// SetRejectedChannel sets the channel rejected suggestions are mirrored to.
func (s *Store) SetRejectedChannel(guildID, channelID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings(guildID).RejectedChannel = channelID
}

// AddStaffRole registers a role that may approve or reject suggestions.
// It reports whether the role was newly added.
func (s *Store) AddStaffRole(guildID, roleID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.settings(guildID)
	for _, r := range st.StaffRoles {
		if r == roleID {
			return false
		}
	}
	st.StaffRoles = append(st.StaffRoles, roleID)
	return true
}

// RemoveStaffRole unregisters a staff role. It reports whether the role
// was present.
func (s *Store) RemoveStaffRole(guildID, roleID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.settings(guildID)
	for i, r := range st.StaffRoles {
		if r == roleID {
			st.StaffRoles = append(st.StaffRoles[:i], st.StaffRoles[i+1:]...)
			return true
		}
	}
	return false
}

// HasStaffRole reports whether any of the member's roles is a staff role.
func (s *Store) HasStaffRole(guildID string, memberRoles []string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.settings(guildID)
	for _, staff := range st.StaffRoles {
		for _, r := range memberRoles {
			if r == staff {
				return true
			}
		}
	}
	return false
}
