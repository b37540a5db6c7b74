// Package ecommerce maps Segment ecommerce spec events onto Adobe Analytics
// cart and purchase actions, serializing products into the "&&products"
// context-data variable.
package ecommerce

import (
	"github.com/sirupsen/logrus"

	"github.com/segment-integrations/analytics-go-adobe-analytics/internal/adobe"
	"github.com/segment-integrations/analytics-go-adobe-analytics/internal/contextdata"
	"github.com/segment-integrations/analytics-go-adobe-analytics/internal/events"
)

// actionCodes maps Segment ecommerce event names to Adobe action codes.
var actionCodes = map[string]string{
	"Order Completed":  "purchase",
	"Product Added":    "scAdd",
	"Product Removed":  "scRemove",
	"Checkout Started": "scCheckout",
	"Cart Viewed":      "scView",
	"Product Viewed":   "prodView",
}

// IsEcommerceEvent reports whether the event name is part of the Segment
// ecommerce spec handled by this mapper.
func IsEcommerceEvent(eventName string) bool {
	_, ok := actionCodes[eventName]
	return ok
}

// Mapper generates Adobe actions for all ecommerce events.
type Mapper struct {
	client            adobe.Client
	contextData       *contextdata.Configuration
	productIdentifier string
	logger            *logrus.Logger
}

func NewMapper(client adobe.Client, contextData *contextdata.Configuration, productIdentifier string, logger *logrus.Logger) *Mapper {
	return &Mapper{
		client:            client,
		contextData:       contextData,
		productIdentifier: productIdentifier,
		logger:            logger,
	}
}

// Track maps one ecommerce track event onto a trackAction call. Events whose
// context data would carry nothing beyond the action code are not forwarded.
func (m *Mapper) Track(ev *events.Event) {
	code, ok := actionCodes[ev.EventName]
	if !ok {
		return
	}
	cdata := m.buildContextData(code, ev)
	if cdata == nil {
		m.logger.WithField("event", ev.EventName).Debug("ecommerce event carries no context data, skipping")
		return
	}
	m.client.TrackAction(code, cdata)
	m.logger.WithFields(logrus.Fields{
		"action":      code,
		"contextData": cdata,
	}).Debug("Analytics.trackAction")
}

func (m *Mapper) buildContextData(code string, ev *events.Event) map[string]string {
	cdata := map[string]string{"&&events": code}
	props := ev.Properties.StringMap()
	extras := ev.Properties.StringMap()

	list := m.extractProducts(ev.Properties, extras)
	if len(list) > 0 {
		cdata["&&products"] = list.String()
	}

	// Both spellings map to purchaseid; snake_case wins when both exist.
	for _, key := range []string{"orderId", "order_id"} {
		if v, ok := props[key]; ok {
			cdata["purchaseid"] = v
			delete(extras, key)
		}
	}

	for _, field := range m.contextData.EventFieldNames() {
		value, err := m.contextData.ResolveProperties(field, ev.Properties)
		if err != nil {
			m.logger.WithError(err).WithField("field", field).Debug("skipping unresolvable context field")
			continue
		}
		if value == nil {
			continue
		}
		if variable, ok := m.contextData.VariableName(field); ok {
			cdata[variable] = events.Stringify(value)
		}
		delete(extras, field)
	}

	prefix := m.contextData.Prefix()
	for key, value := range extras {
		cdata[prefix+key] = value
	}

	// Nothing to send when only the action code remains.
	if len(cdata) == 1 {
		return nil
	}
	return cdata
}

// extractProducts builds the product list from the "products" array when one
// is present and non-empty, otherwise from the flat property bag as a single
// implicit product. Consumed keys are removed from extras.
func (m *Mapper) extractProducts(props events.Properties, extras map[string]string) products {
	if array, ok := props["products"].([]interface{}); ok && len(array) > 0 {
		delete(extras, "products")
		list := make(products, 0, len(array))
		for _, element := range array {
			entry, ok := element.(map[string]interface{})
			if !ok {
				m.logger.Warn("ignoring malformed product entry in products array")
				continue
			}
			p, err := newProduct(events.Properties(entry).StringMap(), m.productIdentifier)
			if err != nil {
				m.logger.Warn("you must provide an id for each product to pass an ecommerce event to Adobe Analytics")
				continue
			}
			list = append(list, p)
		}
		return list
	}

	removed := []string{"category", "quantity", "price"}
	if m.productIdentifier == "" || m.productIdentifier == "id" {
		removed = append(removed, "productId", "product_id")
	} else {
		removed = append(removed, m.productIdentifier)
	}
	for _, key := range removed {
		delete(extras, key)
	}

	p, err := newProduct(props.StringMap(), m.productIdentifier)
	if err != nil {
		m.logger.Debug("event properties do not form a product, skipping products variable")
		return nil
	}
	return products{p}
}
