package middleware

import (
	"net/http"

	"gearshare/internal/handler/httperr"
	"gearshare/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ActorHeader carries the id of the user making the request. There is no
// session layer; the gateway in front of this service fills the header.
const ActorHeader = "X-Sharer-User-Id"

const actorIDKey = "actor_id"

var (
	errActorHeaderMissing = errs.New("actor header missing")
	errActorHeaderInvalid = errs.New("actor header is not a valid UUID")
)

// RequireActor parses the actor header and puts the id on the context.
// Requests without a well-formed header never reach the handlers.
func RequireActor() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(ActorHeader)
		if raw == "" {
			httperr.AbortWithError(c, http.StatusBadRequest, errActorHeaderMissing, ActorHeader+" header required", nil)
			return
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, errs.Mark(err, errActorHeaderInvalid), "Invalid "+ActorHeader+" header", nil)
			return
		}
		c.Set(actorIDKey, id)
		c.Next()
	}
}

func GetActorID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(actorIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
