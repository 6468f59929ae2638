package commands

import (
	"context"
	"errors"
	"fmt"

	"gvmass/internal/scrapers/voice"
	"gvmass/lib/restyutil"
	"gvmass/lib/serviceutil"
)

var errLoginRejected = errors.New("Could not log in with provided credentials")

// login prompts for whatever credentials the config did not provide, then
// signs in.
func login(ctx context.Context) (*voice.Session, error) {
	err := promptCredentials(ctx, &cfg.Email, &cfg.Password)
	if err != nil {
		return nil, err
	}

	opts := voice.ClientOptions{
		Email:            cfg.Email,
		Password:         cfg.Password,
		Endpoints:        cfg.Endpoints,
		UserAgent:        cfg.UserAgent,
		Timeout:          cfg.requestTimeout(),
		CloudflareBypass: cfg.CloudflareBypass,
		Telemetry:        tel,
	}
	if cfg.DumpHttp != "" {
		out, err := restyutil.NewFilesystemOutput(cfg.DumpHttp)
		if err != nil {
			serviceutil.Fatal("failed to create http dump directory", err)
		}
		opts.Dump = out
	}

	fmt.Println(infoStyle.Render("Logging in as " + cfg.Email + "..."))
	session, err := voice.Login(ctx, opts)
	if err != nil {
		return nil, err
	}
	if !session.Authenticated {
		return nil, errLoginRejected
	}
	return session, nil
}

func loadSelection(ctx context.Context, session *voice.Session) (*voice.Directory, error) {
	dir, err := voice.LoadContacts(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("failed to load contacts: %w", err)
	}
	if len(dir.Groups) == 0 {
		return nil, fmt.Errorf("the account has no contacts")
	}
	return dir, nil
}
