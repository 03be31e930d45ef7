package user

import (
	"context"

	"github.com/xiebiao/leafside/internal/application"
	"github.com/xiebiao/leafside/internal/application/event"
	"github.com/xiebiao/leafside/internal/domain/user"
	"github.com/xiebiao/leafside/pkg/metrics"
	"github.com/xiebiao/leafside/pkg/tracing"
)

// RegisterUseCase 用户注册用例，新用户角色为User
type RegisterUseCase struct {
	userService user.Service
	publisher   application.EventPublisher
}

// NewRegisterUseCase 创建注册用例
func NewRegisterUseCase(userService user.Service, publisher application.EventPublisher) *RegisterUseCase {
	return &RegisterUseCase{userService: userService, publisher: publisher}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email    string
	Password string
	Profile  user.Profile
}

func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (*UserInfo, error) {
	ctx, span := tracing.StartSpan(ctx, "RegisterUseCase.Execute")
	defer span.End()

	u, err := uc.userService.Register(ctx, req.Email, req.Password, req.Profile)
	if err != nil {
		return nil, err
	}

	metrics.UsersRegisteredTotal.Inc()
	application.PublishEvent(ctx, uc.publisher, event.UserRegistered, event.UserRegisteredPayload{
		UserID: u.ID,
		Email:  u.Email,
	})
	return ToUserInfo(u), nil
}
