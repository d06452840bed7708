// Package di builds the application dependency graph from the configuration.
package di

import (
	"io"
	"log"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	echoapi "github.com/BHARGAV15008/Cryptography-Resource-Manager/apps/api/echo"
	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core"
	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core/auth"
	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core/course"
	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core/lecture"
	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core/professor"
	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core/project"
	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core/resource"
	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core/user"
	filesvc "github.com/BHARGAV15008/Cryptography-Resource-Manager/services/files"
	logsvc "github.com/BHARGAV15008/Cryptography-Resource-Manager/services/logger"
	ratelimitsvc "github.com/BHARGAV15008/Cryptography-Resource-Manager/services/ratelimit"
	"github.com/BHARGAV15008/Cryptography-Resource-Manager/storage/database"
	inmemdb "github.com/BHARGAV15008/Cryptography-Resource-Manager/storage/database/inmem"
	sqlxrepos "github.com/BHARGAV15008/Cryptography-Resource-Manager/storage/database/sqlx"
)

const (
	EnginePostgres = "postgres"
	EngineMemory   = "memory"

	lectureDownloadPrefix = "/api/lectures/download/"
)

var resourceExts = []string{".pdf", ".ppt", ".pptx", ".doc", ".docx"}

type repositories struct {
	users      user.Repository
	professors professor.Repository
	projects   project.Repository
	courses    course.Repository
	lectures   lecture.Repository
	resources  resource.Repository
}

// Container holds every long-lived dependency of the API and the admin commands.
type Container struct {
	Conf       *core.Config
	Logger     core.Logger
	DBLogger   core.Logger
	Validate   *validator.Validate
	Translator ut.Translator

	DB             *sqlx.DB // nil with the memory engine
	MemDB          *inmemdb.DB
	Redis          redis.UniversalClient // nil without a redis address
	Files          *filesvc.DiskStore
	RateLimitStore middleware.RateLimiterStore

	UserSvc      *user.Service
	Auth         auth.Service
	ProfessorSvc *professor.Service
	ProjectSvc   *project.Service
	CourseSvc    *course.Service
	LectureSvc   *lecture.Service
	ResourceSvc  *resource.Service
}

func newLogger(out io.Writer, prefix string, conf *core.Config) *logsvc.RollbarLogger {
	logger := logsvc.NewRollbarLogger(log.New(out, prefix, log.LstdFlags|log.Lmicroseconds|log.Lshortfile), conf)
	logger.Enable(conf.RollbarToken != "" && !conf.Debug)
	return logger
}

func NewTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

// LecturePolicy accepts any extension. Files are served back through the download route.
func LecturePolicy(conf *core.Config) core.UploadPolicy {
	return core.UploadPolicy{
		MaxSize:   conf.Uploads.LectureMaxSize,
		URLPrefix: lectureDownloadPrefix,
	}
}

// ResourcePolicy only accepts documents. Files are served back as static content.
func ResourcePolicy(conf *core.Config) core.UploadPolicy {
	return core.UploadPolicy{
		Subdir:      conf.Uploads.ResourceSubdir,
		AllowedExts: resourceExts,
		MaxSize:     conf.Uploads.ResourceMaxSize,
		URLPrefix:   "/uploads/" + conf.Uploads.ResourceSubdir + "/",
	}
}

// New wires the whole graph. Logs are written to out.
func New(conf *core.Config, out io.Writer) (*Container, error) {
	c := &Container{
		Conf:       conf,
		Logger:     newLogger(out, "API : ", conf),
		DBLogger:   newLogger(out, "DB : ", conf),
		Validate:   validator.New(),
		Translator: NewTranslator(),
	}
	core.InitValidators(c.Validate, c.Translator)

	repos, err := c.setUpStorage()
	if err != nil {
		return nil, errors.Wrap(err, "setting up storage")
	}

	c.Files, err = filesvc.NewDiskStore(conf.Uploads.Dir, conf.Uploads.ResourceSubdir)
	if err != nil {
		_ = c.Close()
		return nil, errors.Wrap(err, "setting up uploads")
	}

	if conf.RateLimit.RedisAddr != "" {
		c.Redis = redis.NewClient(&redis.Options{Addr: conf.RateLimit.RedisAddr})
		c.RateLimitStore = ratelimitsvc.NewRedisStore(c.Redis, conf.RateLimit.Max, conf.RateLimit.Window, c.Logger)
	} else {
		c.RateLimitStore = echoapi.NewMemoryRateLimiterStore(conf.RateLimit)
	}

	c.UserSvc = user.NewService(repos.users)
	switch conf.Auth.Mode {
	case "jwt":
		c.Auth = auth.NewJWTService(c.UserSvc, conf)
	default:
		c.Logger.Warn("auth: development mode, any non-empty token is accepted")
		c.Auth = auth.NewDevService()
	}

	c.ProfessorSvc = professor.NewService(repos.professors)
	c.ProjectSvc = project.NewService(repos.projects, c.ProfessorSvc)
	c.LectureSvc = lecture.NewService(repos.lectures, repos.courses, c.Files, LecturePolicy(conf), conf.Uploads.Dir, c.Logger)
	c.CourseSvc = course.NewService(repos.courses, c.ProfessorSvc, c.LectureSvc)
	c.ResourceSvc = resource.NewService(repos.resources, c.Files, ResourcePolicy(conf), c.Logger)

	return c, nil
}

func (c *Container) setUpStorage() (repositories, error) {
	if c.Conf.Database.Engine == EngineMemory {
		db, err := inmemdb.Open()
		if err != nil {
			return repositories{}, err
		}
		c.MemDB = db
		return repositories{
			users:      inmemdb.NewUserRepository(db),
			professors: inmemdb.NewProfessorRepository(db),
			projects:   inmemdb.NewProjectRepository(db),
			courses:    inmemdb.NewCourseRepository(db),
			lectures:   inmemdb.NewLectureRepository(db),
			resources:  inmemdb.NewResourceRepository(db),
		}, nil
	}

	if err := database.CreateIfNotExist(c.Conf); err != nil {
		return repositories{}, err
	}
	db, err := database.Open(c.Conf)
	if err != nil {
		return repositories{}, err
	}
	if err = database.Migrate(db.DB); err != nil {
		_ = db.Close()
		return repositories{}, err
	}
	c.DB = db

	client := database.NewClient(db)
	return repositories{
		users:      sqlxrepos.NewUserRepository(client),
		professors: sqlxrepos.NewProfessorRepository(client),
		projects:   sqlxrepos.NewProjectRepository(client),
		courses:    sqlxrepos.NewCourseRepository(client),
		lectures:   sqlxrepos.NewLectureRepository(client),
		resources:  sqlxrepos.NewResourceRepository(client),
	}, nil
}

// ServerDeps hands the API its dependencies.
func (c *Container) ServerDeps() echoapi.ServerDeps {
	return echoapi.ServerDeps{
		Conf:           c.Conf,
		Logger:         c.Logger,
		Validate:       c.Validate,
		Translator:     c.Translator,
		Auth:           c.Auth,
		RateLimitStore: c.RateLimitStore,
		ProfessorSvc:   c.ProfessorSvc,
		ProjectSvc:     c.ProjectSvc,
		CourseSvc:      c.CourseSvc,
		LectureSvc:     c.LectureSvc,
		ResourceSvc:    c.ResourceSvc,
	}
}

// Close releases the database and redis connections.
func (c *Container) Close() error {
	var firstErr error
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			firstErr = errors.Wrap(err, "closing redis")
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil && firstErr == nil {
			firstErr = errors.Wrap(err, "closing database")
		}
	}
	return firstErr
}
