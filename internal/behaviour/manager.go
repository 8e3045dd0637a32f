package behaviour

// Behaviour is a per-frame hook attached to the engine loop. Start runs once
// before the first Update.
type Behaviour interface {
	Start()
	Update(deltaTime float64)
}

type wrapper struct {
	behaviour Behaviour
	started   bool
}

// Manager runs registered behaviours once per frame. The engine owns one;
// there is no global instance.
type Manager struct {
	behaviours []wrapper
}

func NewManager() *Manager {
	return &Manager{}
}

func (m *Manager) Add(b Behaviour) {
	m.behaviours = append(m.behaviours, wrapper{behaviour: b})
}

func (m *Manager) Remove(b Behaviour) {
	for i := range m.behaviours {
		if m.behaviours[i].behaviour == b {
			m.behaviours[i] = m.behaviours[len(m.behaviours)-1]
			m.behaviours = m.behaviours[:len(m.behaviours)-1]
			return
		}
	}
}

func (m *Manager) Clear() {
	m.behaviours = m.behaviours[:0]
}

func (m *Manager) UpdateAll(deltaTime float64) {
	for i := range m.behaviours {
		if !m.behaviours[i].started {
			m.behaviours[i].behaviour.Start()
			m.behaviours[i].started = true
		}
		m.behaviours[i].behaviour.Update(deltaTime)
	}
}
