package metrics

const Namespace = "notely"
