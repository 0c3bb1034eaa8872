package controllers

import (
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prabin-sth/ThreadKart/config"
	"github.com/prabin-sth/ThreadKart/models"
	"github.com/prabin-sth/ThreadKart/utils"
)

// StripeWebhook receives card-network events. The signature is verified over
// the raw body before anything is parsed; a bad signature is a hard 400.
// Unhandled event types are acknowledged so the provider stops redelivering
// them, and redelivery of a handled event converges on the already-paid
// no-op inside SettleOrderPayment.
func StripeWebhook(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		utils.LogError("Failed to read webhook body: %v", err)
		utils.BadRequest(c, "Failed to read request body", nil)
		return
	}

	sigHeader := c.GetHeader("Stripe-Signature")
	if err := utils.VerifyStripeSignature(payload, sigHeader, os.Getenv("STRIPE_WEBHOOK_SECRET"), utils.DefaultStripeTolerance); err != nil {
		utils.LogError("Webhook signature verification failed: %v", err)
		utils.BadRequest(c, "Invalid signature", nil)
		return
	}

	event, err := utils.ParseStripeEvent(payload)
	if err != nil {
		utils.LogError("Failed to parse webhook event: %v", err)
		utils.BadRequest(c, "Invalid payload", nil)
		return
	}

	if event.Type != "checkout.session.completed" {
		utils.LogDebug("Ignoring webhook event type: %s", event.Type)
		c.JSON(200, gin.H{"received": true})
		return
	}

	session := event.Data.Object
	orderIDStr := session.Metadata["order_id"]
	orderID, err := strconv.ParseUint(orderIDStr, 10, 32)
	if err != nil || orderID == 0 {
		utils.LogError("Webhook session %s carries no usable order_id: %q", session.ID, orderIDStr)
		c.JSON(200, gin.H{"received": true})
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.InternalServerError(c, "Failed to process event", nil)
		return
	}

	var order models.Order
	if err := tx.First(&order, uint(orderID)).Error; err != nil {
		tx.Rollback()
		utils.LogError("Webhook references unknown order ID: %d", orderID)
		c.JSON(200, gin.H{"received": true})
		return
	}

	if err := utils.SettleOrderPayment(tx, &order, "", utils.ProviderRefs{
		StripeSessionID:       session.ID,
		StripePaymentIntentID: session.PaymentIntent,
	}); err != nil {
		tx.Rollback()
		utils.LogError("Failed to settle order ID: %d from webhook: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to process event", nil)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit webhook settlement for order ID: %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to process event", nil)
		return
	}
	utils.LogInfo("Order ID: %d settled via card payment", order.ID)

	c.JSON(200, gin.H{"received": true})
}
