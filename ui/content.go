package ui

// Title is the product name shown on every page
const Title = "Sticky Customers Operation"

const homeIntro = `
We want to be the best telecommunication provider around, and that means
constantly improving how we serve our customers.

Some customers are unhappy with our services and end up cancelling their
subscription. The **Sticky Customers Operation** finds those customers early so
we can reach out, hear their feedback and keep them with us for as long as
possible.

Our churn model tells you which customers are most likely to leave. Contact
them first.

Head to the [Prediction](/prediction) page, enter a customer's details and find
out who to call. Ask for feedback and make our customers stick!
`

const homeInputs = `
- Customer's Basic Info
    1. Gender
    1. Senior Citizen
    1. Partner Status
    1. Dependents
    1. Tenure
- Base Services
    1. Phone Service
    1. Multiple Lines
    1. Internet Service
- Additional Internet Services
    1. Online Security
    1. Online Backup
    1. Device Protection
    1. Tech Support
    1. Streaming TV
    1. Streaming Movies
- Contract Details
    1. Contract Type
    1. Paperless Billing
    1. Payment Method
    1. Monthly Charges
    1. Total Charges
`

const analysisBody = `
## The big picture

Most customers are satisfied with our services: only a minority have stopped
their subscription.

## Phone service

About 90% of customers subscribe to the phone service. Every customer without
a phone service is on DSL internet.

## Internet service

Customers on Fiber optic internet are the most likely to stop their
subscription.

## Contract details

Most customers are on a month-to-month contract with paperless billing, and
electronic check is the most common payment method. Those same groups are the
most likely to leave.

## Tenure

Customers who have been with us for less than a year are far more likely to
stop their subscription than those who have stayed longer.
`

const aboutBody = `
## About this project

This application demonstrates an end-to-end churn workflow: dataset checks,
missing-value imputation, skewness-aware outlier handling, and a small neural
network served behind a JSON backend.

- The **backend** answers ` + "`POST /predict`" + ` with the predicted class.
- The **frontend** collects customer attributes and explains the result.
- The **prep** command cleans raw exports before training.
`

// Result copy for the prediction page
const (
	msgStayResult  = "There's a huge chance that this customer will stick with us."
	msgStayAction  = "That's great. Celebrate for a bit, then analyze the next customer."
	msgStayExtra   = "Let's toast for this small win"
	msgChurnResult = "Uh-Oh!! It's highly likely that this customer won't stick!"
	msgChurnAction = "Stay calm. Contact them ASAP, find out what their concerns are, and make them stick!"
	msgChurnExtra  = "Here's a four-leaf clover for you"
	msgGoodLuck    = "Good Luck!"
	msgInputError  = "There's an error in the input data!"
)
