package cognito

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/onboarding-api/internal/config"
	"github.com/onboarding-api/internal/domain"
)

// IdentityProvider wraps the account lifecycle on the external identity
// system. Every operation fails independently; callers own the ordering
// and partial-failure policy.
type IdentityProvider interface {
	// AccountExists is best-effort: the provider is eventually consistent,
	// so a negative result is a hint, never a guarantee. The user record
	// store stays authoritative for the existence check.
	AccountExists(ctx context.Context, email string) (bool, error)
	// CreateAccount registers the principal with the provider's own
	// notification suppressed; this workflow owns notification.
	CreateAccount(ctx context.Context, email string) error
	// SetPassword establishes the permanent credential.
	SetPassword(ctx context.Context, email, password string, permanent bool) error
	// ConfirmRegistration marks the identity verified. Confirming an
	// already-confirmed account reports success: the end state is identical.
	ConfirmRegistration(ctx context.Context, email string) error
	// Authenticate exchanges credentials for provider-issued tokens.
	Authenticate(ctx context.Context, email, password string) (*AuthTokens, error)
}

// AuthTokens holds provider-issued tokens from a successful authentication.
type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	IDToken      string `json:"id_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int32  `json:"expires_in"`
}

// api is the slice of the Cognito client the provider uses, split out so
// tests can substitute a fake.
type api interface {
	AdminGetUser(ctx context.Context, in *cip.AdminGetUserInput, opts ...func(*cip.Options)) (*cip.AdminGetUserOutput, error)
	AdminCreateUser(ctx context.Context, in *cip.AdminCreateUserInput, opts ...func(*cip.Options)) (*cip.AdminCreateUserOutput, error)
	AdminSetUserPassword(ctx context.Context, in *cip.AdminSetUserPasswordInput, opts ...func(*cip.Options)) (*cip.AdminSetUserPasswordOutput, error)
	AdminConfirmSignUp(ctx context.Context, in *cip.AdminConfirmSignUpInput, opts ...func(*cip.Options)) (*cip.AdminConfirmSignUpOutput, error)
	InitiateAuth(ctx context.Context, in *cip.InitiateAuthInput, opts ...func(*cip.Options)) (*cip.InitiateAuthOutput, error)
}

type provider struct {
	client     api
	userPoolID string
	clientID   string
}

// NewProvider builds the Cognito-backed identity provider adapter.
func NewProvider(cfg *config.Config) (IdentityProvider, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.AWSRegion),
	}
	if cfg.AWSAccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	clientOpts := []func(*cip.Options){}
	if cfg.AWSEndpointURL != "" {
		clientOpts = append(clientOpts, func(o *cip.Options) {
			o.BaseEndpoint = aws.String(cfg.AWSEndpointURL)
		})
	}
	return &provider{
		client:     cip.NewFromConfig(awsCfg, clientOpts...),
		userPoolID: cfg.CognitoUserPoolID,
		clientID:   cfg.CognitoClientID,
	}, nil
}

// NewProviderWithClient is used by tests to inject a fake Cognito API.
func NewProviderWithClient(client api, userPoolID, clientID string) IdentityProvider {
	return &provider{client: client, userPoolID: userPoolID, clientID: clientID}
}

func (p *provider) AccountExists(ctx context.Context, email string) (bool, error) {
	_, err := p.client.AdminGetUser(ctx, &cip.AdminGetUserInput{
		UserPoolId: aws.String(p.userPoolID),
		Username:   aws.String(email),
	})
	if err != nil {
		var nf *types.UserNotFoundException
		if errors.As(err, &nf) {
			return false, nil
		}
		return false, providerErr("admin get user", err)
	}
	return true, nil
}

func (p *provider) CreateAccount(ctx context.Context, email string) error {
	_, err := p.client.AdminCreateUser(ctx, &cip.AdminCreateUserInput{
		UserPoolId: aws.String(p.userPoolID),
		Username:   aws.String(email),
		UserAttributes: []types.AttributeType{
			{Name: aws.String("email"), Value: aws.String(email)},
			{Name: aws.String("email_verified"), Value: aws.String("false")},
		},
		MessageAction: types.MessageActionTypeSuppress,
	})
	if err != nil {
		var ue *types.UsernameExistsException
		if errors.As(err, &ue) {
			return fmt.Errorf("provider account for %s: %w", email, domain.ErrConflict)
		}
		return providerErr("admin create user", err)
	}
	return nil
}

func (p *provider) SetPassword(ctx context.Context, email, password string, permanent bool) error {
	_, err := p.client.AdminSetUserPassword(ctx, &cip.AdminSetUserPasswordInput{
		UserPoolId: aws.String(p.userPoolID),
		Username:   aws.String(email),
		Password:   aws.String(password),
		Permanent:  permanent,
	})
	if err != nil {
		return providerErr("admin set user password", err)
	}
	return nil
}

func (p *provider) ConfirmRegistration(ctx context.Context, email string) error {
	_, err := p.client.AdminConfirmSignUp(ctx, &cip.AdminConfirmSignUpInput{
		UserPoolId: aws.String(p.userPoolID),
		Username:   aws.String(email),
	})
	if err != nil {
		// Cognito reports confirming an already-confirmed account as
		// NotAuthorizedException; the target state is already reached.
		var na *types.NotAuthorizedException
		if errors.As(err, &na) {
			return nil
		}
		return providerErr("admin confirm sign up", err)
	}
	return nil
}

func (p *provider) Authenticate(ctx context.Context, email, password string) (*AuthTokens, error) {
	out, err := p.client.InitiateAuth(ctx, &cip.InitiateAuthInput{
		AuthFlow: types.AuthFlowTypeUserPasswordAuth,
		ClientId: aws.String(p.clientID),
		AuthParameters: map[string]string{
			"USERNAME": email,
			"PASSWORD": password,
		},
	})
	if err != nil {
		var na *types.NotAuthorizedException
		var nf *types.UserNotFoundException
		if errors.As(err, &na) || errors.As(err, &nf) {
			return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
		}
		return nil, providerErr("initiate auth", err)
	}
	if out.AuthenticationResult == nil {
		return nil, fmt.Errorf("auth challenge not supported: %w", domain.ErrUnauthorized)
	}
	res := out.AuthenticationResult
	return &AuthTokens{
		AccessToken:  aws.ToString(res.AccessToken),
		IDToken:      aws.ToString(res.IdToken),
		RefreshToken: aws.ToString(res.RefreshToken),
		ExpiresIn:    res.ExpiresIn,
	}, nil
}

// providerErr normalizes any other Cognito error shape to the domain
// provider sentinel so collaborator details never leak past the adapter.
func providerErr(op string, err error) error {
	return fmt.Errorf("%s: %v: %w", op, err, domain.ErrProvider)
}
