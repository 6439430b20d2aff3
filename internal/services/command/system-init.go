package command

import (
	"context"
	"time"

	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/constant"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/midentifier"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mlog"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mmodel"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/motel"
)

// SystemInitResult is the response shape of the one-time bootstrap
// procedure.
type SystemInitResult struct {
	AlreadyInitialized bool         `json:"alreadyInitialized"`
	RootUser           *mmodel.User `json:"rootUser,omitempty"`
	// RootAPIKey carries the raw secret, returned only the first time
	// system-init runs.
	RootAPIKey *mmodel.CreatedApiKey `json:"apiKey,omitempty"`
}

// SystemInit is the idempotent bootstrap procedure that is the sole
// unauthenticated-allowed method: load-by-username "root", and if
// present return a no-op result; otherwise create the root user and its
// bootstrap API key and return the raw secret once.
func (uc *UseCase) SystemInit(ctx context.Context) (*SystemInitResult, error) {
	logger := mlog.NewLoggerFromContext(ctx)
	tracer := motel.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "command.system_init")
	defer span.End()

	existing, err := uc.UserRepo.FindByUsername(ctx, mmodel.ReservedRootUsername)
	if err != nil {
		if _, ok := err.(constant.EntityNotFoundError); !ok {
			logger.Errorf("checking for existing root user: %v", err)
			return nil, constant.InternalError{Message: "failed to check system-init state", Err: err}
		}
	}

	if existing != nil {
		return &SystemInitResult{AlreadyInitialized: true, RootUser: existing}, nil
	}

	now := mmodel.NewMillisTime(time.Now())

	root := &mmodel.User{
		ID:          midentifier.New(),
		Username:    mmodel.ReservedRootUsername,
		DisplayName: "Root User",
		Roles:       []mmodel.Role{mmodel.RoleRoot},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	rawSecret, hashedKey, prefix, err := generateAPIKeySecret()
	if err != nil {
		logger.Errorf("generating root api key secret: %v", err)
		return nil, constant.InternalError{Message: "failed to generate bootstrap api key", Err: err}
	}

	key := &mmodel.ApiKey{
		ID:          midentifier.New(),
		UserID:      root.ID,
		KeyPrefix:   prefix,
		Status:      mmodel.ApiKeyStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
		CreatedByID: root.ID,
		UpdatedByID: root.ID,
	}

	var created *mmodel.ApiKey

	// The root user and its bootstrap api key must land together: a
	// partial failure here (e.g. the key insert failing after the user
	// commits) would permanently brick SystemInit, since every future
	// call would see the root username already taken and report
	// alreadyInitialized forever with no key ever issued.
	err = uc.Transactor.RunInTx(ctx, func(ctx context.Context) error {
		var txErr error

		root, txErr = uc.UserRepo.Create(ctx, root)
		if txErr != nil {
			return txErr
		}

		created, txErr = uc.ApiKeyRepo.Create(ctx, key, hashedKey)
		return txErr
	})
	if err != nil {
		logger.Errorf("creating root user and bootstrap api key: %v", err)
		return nil, err
	}

	return &SystemInitResult{
		RootUser:   root,
		RootAPIKey: &mmodel.CreatedApiKey{ApiKey: *created, RawSecret: rawSecret},
	}, nil
}
