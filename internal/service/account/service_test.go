package account_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Demystifier-git/Micro-service-E-commerce-Application-Deployed-on-AWS-EKS/internal/domain"
	"github.com/Demystifier-git/Micro-service-E-commerce-Application-Deployed-on-AWS-EKS/internal/service/account"
	"github.com/Demystifier-git/Micro-service-E-commerce-Application-Deployed-on-AWS-EKS/internal/storage/memory"
)

func newService() *account.Service {
	return account.New(memory.NewUserRepository(), nil, nil)
}

// recordingUserPublisher запоминает опубликованные события регистрации.
type recordingUserPublisher struct {
	names []string
	fail  error
}

func (p *recordingUserPublisher) UserRegistered(name string) error {
	if p.fail != nil {
		return p.fail
	}
	p.names = append(p.names, name)
	return nil
}

func TestRegisterThenLoginReturnsSameRecord(t *testing.T) {
	svc := newService()

	require.NoError(t, svc.Register("alice", "secret", "alice@example.com"))

	user, err := svc.Login("alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, domain.User{Name: "alice", Password: "secret", Email: "alice@example.com"}, user)
}

func TestRegisterValidatesRequiredFields(t *testing.T) {
	svc := newService()

	cases := []struct {
		name     string
		username string
		password string
		email    string
		want     error
	}{
		{"no name", "", "pw", "e@example.com", domain.ErrNameRequired},
		{"no password", "u", "", "e@example.com", domain.ErrPasswordRequired},
		{"no email", "u", "pw", "", domain.ErrEmailRequired},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.Register(tc.username, tc.password, tc.email)
			assert.ErrorIs(t, err, tc.want)
			assert.True(t, domain.IsMissingField(err))
		})
	}
}

func TestRegisterTakenNameFailsRegardlessOfPayload(t *testing.T) {
	svc := newService()
	require.NoError(t, svc.Register("bob", "pw", "bob@example.com"))

	err := svc.Register("bob", "different", "other@example.com")
	assert.ErrorIs(t, err, domain.ErrNameExists)
}

func TestLoginDistinguishesNotFoundFromWrongPassword(t *testing.T) {
	svc := newService()
	require.NoError(t, svc.Register("carol", "right", "carol@example.com"))

	_, err := svc.Login("carol", "wrong")
	assert.ErrorIs(t, err, domain.ErrWrongPassword)

	_, err = svc.Login("nobody", "whatever")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLoginValidatesInput(t *testing.T) {
	svc := newService()

	_, err := svc.Login("", "pw")
	assert.ErrorIs(t, err, domain.ErrNameRequired)

	_, err = svc.Login("u", "")
	assert.ErrorIs(t, err, domain.ErrPasswordRequired)
}

func TestCheck(t *testing.T) {
	svc := newService()
	require.NoError(t, svc.Register("dave", "pw", "dave@example.com"))

	assert.NoError(t, svc.Check("dave"))
	assert.ErrorIs(t, svc.Check("ghost"), domain.ErrUserNotFound)
}

func TestRegisterPublishesEvent(t *testing.T) {
	publisher := &recordingUserPublisher{}
	svc := account.New(memory.NewUserRepository(), publisher, nil)

	require.NoError(t, svc.Register("erin", "pw", "erin@example.com"))
	assert.Equal(t, []string{"erin"}, publisher.names)
}

func TestRegisterDoesNotPublishOnFailure(t *testing.T) {
	publisher := &recordingUserPublisher{}
	svc := account.New(memory.NewUserRepository(), publisher, nil)
	require.NoError(t, svc.Register("frank", "pw", "frank@example.com"))
	publisher.names = nil

	assert.ErrorIs(t, svc.Register("frank", "pw", "frank@example.com"), domain.ErrNameExists)
	assert.ErrorIs(t, svc.Register("", "pw", "e@example.com"), domain.ErrNameRequired)
	assert.Empty(t, publisher.names)
}

func TestRegisterSucceedsWhenPublishFails(t *testing.T) {
	publisher := &recordingUserPublisher{fail: assert.AnError}
	svc := account.New(memory.NewUserRepository(), publisher, nil)

	require.NoError(t, svc.Register("grace", "pw", "grace@example.com"))

	user, err := svc.Login("grace", "pw")
	require.NoError(t, err)
	assert.Equal(t, "grace", user.Name)
}

func TestList(t *testing.T) {
	svc := newService()
	require.NoError(t, svc.Register("u1", "pw", "u1@example.com"))
	require.NoError(t, svc.Register("u2", "pw", "u2@example.com"))

	users, err := svc.List()
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
