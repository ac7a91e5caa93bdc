package mockworker

import (
	"github.com/stretchr/testify/mock"

	"bot-analytics-service/internal/model"
)

type Worker struct {
	mock.Mock
}

func (m *Worker) Enqueue(in model.UserInteraction) {
	m.Called(in)
}

func (m *Worker) Shutdown() {
	m.Called()
}
