package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/piprs/piprs/gateway"
)

// Wire bodies. Field presence is validated by the gateway so that the
// missing-field messages stay in one place.
type registerBody struct {
	Key      string `json:"key"`
	Account  string `json:"account"`
	Password string `json:"password"`
}

type paymentBody struct {
	Signature string `json:"signature"`
	Key       string `json:"key"`
	IPR       string `json:"ipr"`
}

func (s *Server) handleRegister(c *gin.Context) {
	var body registerBody
	if err := c.ShouldBindJSON(&body); err != nil {
		errorReply(c, http.StatusUnprocessableEntity, "request body must be a JSON object")
		return
	}

	err := s.svc.Register(c.Request.Context(), gateway.RegisterRequest{
		Key:      body.Key,
		Account:  body.Account,
		Password: body.Password,
	})
	if err != nil {
		errorReply(c, statusFor(err), err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "ok"})
}

func (s *Server) handlePayment(c *gin.Context) {
	var body paymentBody
	if err := c.ShouldBindJSON(&body); err != nil {
		errorReply(c, http.StatusUnprocessableEntity, "request body must be a JSON object")
		return
	}

	id, err := s.svc.Pay(c.Request.Context(), gateway.PayRequest{
		Key:       body.Key,
		Signature: body.Signature,
		IPR:       body.IPR,
	})
	if err != nil {
		errorReply(c, statusFor(err), err.Error())
		return
	}

	s.log.Info().Str("transfer_id", id).Msg("payment accepted for submission")
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func errorReply(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"status": "error", "message": message})
}

// statusFor separates "your request is bad" (422) from "the ledger is
// unreachable" (502). The JSON body shape is identical in every case, so
// clients that only look at status/message keep working.
func statusFor(err error) int {
	switch gateway.ErrKind(err) {
	case gateway.KindInput,
		gateway.KindDecode,
		gateway.KindAuth,
		gateway.KindUnknownSender,
		gateway.KindCredential,
		gateway.KindDuplicate:
		return http.StatusUnprocessableEntity
	case gateway.KindQuote:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
